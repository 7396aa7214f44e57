// Package scoring grades quiz attempts. The quiz service and the offline
// client mode both go through Grade so a pass means the same thing everywhere.
package scoring

import (
	"math"

	"lessonquiz/internal/model"
)

// DefaultPassThreshold is the share of correct answers needed to pass.
const DefaultPassThreshold = 0.70

// Result is a graded count of correct answers.
type Result struct {
	Score   int // percent, rounded half away from zero
	Correct int
	Total   int
	Passed  bool
}

// Grade scores correct out of total. Passing compares whole percents
// (correct*100 >= threshold%*total) so no float rounding can flip a verdict.
func Grade(correct, total int, threshold float64) Result {
	if total <= 0 {
		return Result{}
	}
	if correct < 0 {
		correct = 0
	}
	if correct > total {
		correct = total
	}
	thresholdPct := int(math.Round(threshold * 100))
	return Result{
		Score:   int(math.Round(float64(correct) * 100 / float64(total))),
		Correct: correct,
		Total:   total,
		Passed:  correct*100 >= thresholdPct*total,
	}
}

// GradeAnswers compares answers against each question's correct option.
func GradeAnswers(questions []model.Question, answers map[string]string, threshold float64) model.ScoreResult {
	results := make(map[string]bool, len(questions))
	correct := 0
	for _, q := range questions {
		selected := answers[q.ID]
		ok := selected != "" && selected == q.CorrectAnswer
		results[q.ID] = ok
		if ok {
			correct++
		}
	}
	g := Grade(correct, len(questions), threshold)
	return model.ScoreResult{
		Score:           g.Score,
		TotalQuestions:  g.Total,
		CorrectAnswers:  g.Correct,
		Passed:          g.Passed,
		QuestionResults: results,
	}
}
