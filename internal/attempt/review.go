package attempt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"lessonquiz/internal/model"
)

// ReviewItem is one question of the post-submit recap.
type ReviewItem struct {
	QuestionID  string
	Text        string
	Options     []model.Option
	Selected    string
	Correct     string
	Explanation string
	IsCorrect   bool
	Flagged     bool
}

// Review builds the recap items. Correctness comes from the graded result
// when it names the question, otherwise from comparing option ids.
func Review(questions []model.Question, answers map[string]string, result model.ScoreResult) []ReviewItem {
	items := make([]ReviewItem, len(questions))
	for i, q := range questions {
		selected := answers[q.ID]
		correct, ok := result.QuestionResults[q.ID]
		if !ok {
			correct = selected != "" && selected == q.CorrectAnswer
		}
		items[i] = ReviewItem{
			QuestionID:  q.ID,
			Text:        q.Text,
			Options:     q.Options,
			Selected:    selected,
			Correct:     q.CorrectAnswer,
			Explanation: q.Explanation,
			IsCorrect:   correct,
		}
	}
	return items
}

// Recap is the reviewable outcome of a submitted attempt.
type Recap struct {
	LessonID string
	Result   Result
	Items    []ReviewItem
}

// Review returns the recap of a submitted attempt.
func (a *Attempt) Review() (*Recap, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase != Submitted || a.result == nil {
		return nil, ErrNotSubmitted
	}
	items := Review(a.questions, a.answers, a.result.ScoreResult)
	for i := range items {
		items[i].Flagged = a.flagged[items[i].QuestionID]
	}
	return &Recap{LessonID: a.lessonID, Result: *a.result, Items: items}, nil
}

// OptionLabel is the one-based number shown for an option id.
func OptionLabel(optionID string) string {
	n, err := strconv.Atoi(optionID)
	if err != nil {
		return optionID
	}
	return strconv.Itoa(n + 1)
}

// Render writes the recap as plain text.
func (r *Recap) Render(w io.Writer) error {
	var b strings.Builder

	verdict := "not passed"
	if r.Result.Passed {
		verdict = "passed"
	}
	fmt.Fprintf(&b, "Score: %d%% (%d/%d correct), %s", r.Result.Score, r.Result.CorrectAnswers, r.Result.TotalQuestions, verdict)
	if !r.Result.Verified {
		b.WriteString(" [graded offline, not verified]")
	}
	b.WriteString("\n")

	for i, item := range r.Items {
		mark := "wrong"
		if item.IsCorrect {
			mark = "right"
		}
		flag := ""
		if item.Flagged {
			flag = " (flagged)"
		}
		fmt.Fprintf(&b, "\n%d. %s [%s]%s\n", i+1, item.Text, mark, flag)

		for _, o := range item.Options {
			prefix := "   "
			switch {
			case o.ID == item.Selected && o.ID == item.Correct:
				prefix = " * "
			case o.ID == item.Selected:
				prefix = " x "
			case o.ID == item.Correct:
				prefix = " + "
			}
			fmt.Fprintf(&b, "%s%s) %s\n", prefix, OptionLabel(o.ID), o.Text)
		}
		if item.Explanation != "" {
			fmt.Fprintf(&b, "   %s\n", item.Explanation)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
