package attempt

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lessonquiz/internal/model"
	"lessonquiz/internal/scoring"
)

type fakeSource struct {
	questions []model.Question
	err       error
}

func (s *fakeSource) LessonQuestions(context.Context, string) ([]model.Question, error) {
	return s.questions, s.err
}

// fakeSubmitter grades with the shared scoring rules, or fails with err.
type fakeSubmitter struct {
	mu        sync.Mutex
	questions []model.Question
	err       error
	calls     int
	block     chan struct{}
}

func (s *fakeSubmitter) SubmitQuiz(_ context.Context, _ string, answers map[string]string) (*model.ScoreResult, error) {
	s.mu.Lock()
	s.calls++
	block := s.block
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	if s.err != nil {
		return nil, s.err
	}
	res := scoring.GradeAnswers(s.questions, answers, scoring.DefaultPassThreshold)
	res.AttemptID = "attempt-1"
	return &res, nil
}

// threeQuestions has correct answers "1", "0", "3".
func threeQuestions() []model.Question {
	opts := model.PositionalOptions([]string{"a", "b", "c", "d"})
	return []model.Question{
		{ID: "q1", Text: "first", Options: opts, CorrectAnswer: "1", Explanation: "b"},
		{ID: "q2", Text: "second", Options: opts, CorrectAnswer: "0"},
		{ID: "q3", Text: "third", Options: opts, CorrectAnswer: "3"},
	}
}

func answerAll(t *testing.T, a *Attempt, selected ...string) {
	t.Helper()
	for i, q := range a.Questions() {
		require.NoError(t, a.SetAnswer(q.ID, selected[i]))
	}
}

type passRecorder struct {
	mu      sync.Mutex
	results []Result
}

func (p *passRecorder) onPassed(_ context.Context, _ string, r Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, r)
}

func newAttempt(t *testing.T, sub Submitter, opts Options) *Attempt {
	t.Helper()
	a, err := Load(context.Background(), &fakeSource{questions: threeQuestions()}, sub, "lesson-1", opts)
	require.NoError(t, err)
	return a
}

func TestInitialState(t *testing.T) {
	a := newAttempt(t, &fakeSubmitter{}, Options{})

	assert.Equal(t, Answering, a.Phase())
	assert.Equal(t, 3, a.QuestionCount())
	assert.Equal(t, 0, a.AnsweredCount())
	assert.Equal(t, 0, a.CurrentIndex())
	assert.Equal(t, map[string]string{"q1": "", "q2": "", "q3": ""}, a.Answers())
	assert.False(t, a.CanSubmit())
	_, ok := a.Result()
	assert.False(t, ok)
}

func TestSetAnswerOverwrites(t *testing.T) {
	a := newAttempt(t, &fakeSubmitter{}, Options{})

	require.NoError(t, a.SetAnswer("q1", "2"))
	require.NoError(t, a.SetAnswer("q1", "1"))
	assert.Equal(t, "1", a.Answer("q1"))
	assert.Equal(t, 1, a.AnsweredCount())

	assert.Equal(t, ErrUnknownQuestion, errors.Cause(a.SetAnswer("nope", "0")))
	assert.Equal(t, ErrUnknownOption, errors.Cause(a.SetAnswer("q1", "4")))
	assert.Equal(t, ErrUnknownOption, errors.Cause(a.SetAnswer("q1", "")))
	assert.Equal(t, "1", a.Answer("q1"))
}

func TestNavigation(t *testing.T) {
	a := newAttempt(t, &fakeSubmitter{}, Options{})

	assert.False(t, a.Prev())
	assert.True(t, a.Next())
	assert.True(t, a.Next())
	assert.False(t, a.Next())
	assert.Equal(t, 2, a.CurrentIndex())
	assert.Equal(t, "q3", a.Current().ID)

	require.NoError(t, a.JumpTo(0))
	assert.Equal(t, "q1", a.Current().ID)
	assert.Equal(t, ErrOutOfRange, errors.Cause(a.JumpTo(3)))
	assert.Equal(t, ErrOutOfRange, errors.Cause(a.JumpTo(-1)))
	assert.Equal(t, 0, a.CurrentIndex())
}

func TestFlagsDoNotBlockSubmit(t *testing.T) {
	a := newAttempt(t, &fakeSubmitter{questions: threeQuestions()}, Options{})

	on, err := a.ToggleFlag("q2")
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, a.IsFlagged("q2"))
	assert.Equal(t, 1, a.FlaggedCount())

	on, err = a.ToggleFlag("q2")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, 0, a.FlaggedCount())

	_, err = a.ToggleFlag("q9")
	assert.Equal(t, ErrUnknownQuestion, errors.Cause(err))

	_, err = a.ToggleFlag("q3")
	require.NoError(t, err)
	answerAll(t, a, "1", "0", "3")
	assert.True(t, a.CanSubmit())
	_, err = a.Submit(context.Background())
	require.NoError(t, err)
}

func TestSubmitRequiresEveryAnswer(t *testing.T) {
	sub := &fakeSubmitter{questions: threeQuestions()}
	a := newAttempt(t, sub, Options{})

	require.NoError(t, a.SetAnswer("q1", "1"))
	require.NoError(t, a.SetAnswer("q2", "0"))
	assert.False(t, a.CanSubmit())

	_, err := a.Submit(context.Background())
	assert.Equal(t, ErrIncomplete, err)
	assert.Equal(t, 0, sub.calls)
	assert.Equal(t, Answering, a.Phase())
}

func TestSubmitTwoOfThree(t *testing.T) {
	var passed passRecorder
	a := newAttempt(t, &fakeSubmitter{questions: threeQuestions()}, Options{OnPassed: passed.onPassed})
	answerAll(t, a, "1", "0", "2")

	res, err := a.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 67, res.Score)
	assert.Equal(t, 2, res.CorrectAnswers)
	assert.False(t, res.Passed)
	assert.True(t, res.Verified)
	assert.Equal(t, Submitted, a.Phase())
	assert.Empty(t, passed.results)
}

func TestSubmitAllCorrectCallsOnPassedOnce(t *testing.T) {
	var passed passRecorder
	sub := &fakeSubmitter{questions: threeQuestions()}
	a := newAttempt(t, sub, Options{OnPassed: passed.onPassed})
	answerAll(t, a, "1", "0", "3")

	res, err := a.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
	assert.True(t, res.Passed)

	_, err = a.Submit(context.Background())
	assert.Equal(t, ErrAlreadySubmitted, err)
	assert.Equal(t, ErrAlreadySubmitted, a.SetAnswer("q1", "0"))

	assert.Equal(t, 1, sub.calls)
	require.Len(t, passed.results, 1)
	assert.Equal(t, "attempt-1", passed.results[0].AttemptID)
}

func TestSubmitFailureKeepsAnswering(t *testing.T) {
	var passed passRecorder
	sub := &fakeSubmitter{questions: threeQuestions(), err: errors.New("connection refused")}
	a := newAttempt(t, sub, Options{OnPassed: passed.onPassed})
	answerAll(t, a, "1", "0", "3")

	_, err := a.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, Answering, a.Phase())
	assert.True(t, a.CanSubmit())
	assert.Equal(t, "3", a.Answer("q3"))

	sub.err = nil
	res, err := a.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.Len(t, passed.results, 1)
}

func TestOfflineSubmitGradesLocally(t *testing.T) {
	var passed passRecorder
	sub := &fakeSubmitter{err: errors.New("timeout")}
	a := newAttempt(t, sub, Options{Offline: true, OnPassed: passed.onPassed})
	answerAll(t, a, "1", "0", "3")

	res, err := a.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.True(t, res.Passed)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, map[string]bool{"q1": true, "q2": true, "q3": true}, res.QuestionResults)
	assert.Empty(t, passed.results, "unverified passes never complete a lesson")
}

func TestOfflineLoadUsesMockQuiz(t *testing.T) {
	sub := &fakeSubmitter{}
	a, err := Load(context.Background(), &fakeSource{err: errors.New("dial tcp: refused")}, sub, "lesson-1", Options{Offline: true})
	require.NoError(t, err)
	assert.True(t, a.Offline())
	assert.Equal(t, 3, a.QuestionCount())

	for _, q := range a.Questions() {
		require.NoError(t, a.SetAnswer(q.ID, q.CorrectAnswer))
	}
	res, err := a.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, 0, sub.calls, "mock questions are never sent to the server")
}

func TestLoadFailureWithoutOffline(t *testing.T) {
	_, err := Load(context.Background(), &fakeSource{err: errors.New("boom")}, nil, "lesson-1", Options{})
	require.Error(t, err)

	_, err = Load(context.Background(), &fakeSource{}, nil, "lesson-1", Options{})
	assert.Equal(t, ErrNoQuestions, err)
}

func TestDuplicateQuestionsDropped(t *testing.T) {
	qs := append(threeQuestions(), model.Question{ID: "q1", Text: "again", Options: model.PositionalOptions([]string{"x"})})
	a, err := New("lesson-1", qs, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, a.QuestionCount())
	assert.Equal(t, "first", a.Questions()[0].Text)
}

func TestConcurrentSubmitRejected(t *testing.T) {
	sub := &fakeSubmitter{questions: threeQuestions(), block: make(chan struct{})}
	a := newAttempt(t, sub, Options{})
	answerAll(t, a, "1", "0", "3")

	done := make(chan error, 1)
	go func() {
		_, err := a.Submit(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool {
		sub.mu.Lock()
		defer sub.mu.Unlock()
		return sub.calls == 1
	}, time.Second, time.Millisecond)

	_, err := a.Submit(context.Background())
	assert.Equal(t, ErrSubmitInProgress, err)
	assert.Equal(t, ErrSubmitInProgress, a.Reset())
	assert.Equal(t, ErrSubmitInProgress, a.SetAnswer("q1", "0"))

	close(sub.block)
	require.NoError(t, <-done)
	assert.Equal(t, Submitted, a.Phase())
}

func TestResetIsIdempotent(t *testing.T) {
	a := newAttempt(t, &fakeSubmitter{questions: threeQuestions()}, Options{})
	before := a.Questions()
	answerAll(t, a, "1", "0", "2")
	_, err := a.ToggleFlag("q1")
	require.NoError(t, err)
	require.NoError(t, a.JumpTo(2))
	_, err = a.Submit(context.Background())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, a.Reset())
		assert.Equal(t, Answering, a.Phase())
		assert.Equal(t, 0, a.AnsweredCount())
		assert.Equal(t, 0, a.FlaggedCount())
		assert.Equal(t, 0, a.CurrentIndex())
		assert.Equal(t, before, a.Questions())
		_, ok := a.Result()
		assert.False(t, ok)
	}
}

func TestReview(t *testing.T) {
	a := newAttempt(t, &fakeSubmitter{questions: threeQuestions()}, Options{})

	_, err := a.Review()
	assert.Equal(t, ErrNotSubmitted, err)

	answerAll(t, a, "1", "0", "2")
	_, err = a.ToggleFlag("q3")
	require.NoError(t, err)
	_, err = a.Submit(context.Background())
	require.NoError(t, err)

	recap, err := a.Review()
	require.NoError(t, err)
	require.Len(t, recap.Items, 3)
	assert.True(t, recap.Items[0].IsCorrect)
	assert.Equal(t, "b", recap.Items[0].Explanation)
	last := recap.Items[2]
	assert.False(t, last.IsCorrect)
	assert.Equal(t, "2", last.Selected)
	assert.Equal(t, "3", last.Correct)
	assert.True(t, last.Flagged)

	var buf bytes.Buffer
	require.NoError(t, recap.Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "Score: 67% (2/3 correct), not passed\n")
	assert.Contains(t, out, "3. third [wrong] (flagged)\n")
	assert.Contains(t, out, " x 3) c\n")
	assert.Contains(t, out, " + 4) d\n")
	assert.Contains(t, out, " * 2) b\n")
	assert.NotContains(t, out, "not verified")
}

func TestFlagsFrozenAfterSubmit(t *testing.T) {
	a := newAttempt(t, &fakeSubmitter{questions: threeQuestions()}, Options{})
	answerAll(t, a, "1", "0", "3")
	_, err := a.ToggleFlag("q1")
	require.NoError(t, err)
	_, err = a.Submit(context.Background())
	require.NoError(t, err)

	before, err := a.Review()
	require.NoError(t, err)

	on, err := a.ToggleFlag("q2")
	assert.Equal(t, ErrAlreadySubmitted, err)
	assert.False(t, on)
	on, err = a.ToggleFlag("q1")
	assert.Equal(t, ErrAlreadySubmitted, err)
	assert.True(t, on)

	after, err := a.Review()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, a.FlaggedCount())
}

func TestReviewFallsBackToLocalComparison(t *testing.T) {
	qs := threeQuestions()
	answers := map[string]string{"q1": "1", "q2": "2", "q3": "3"}
	items := Review(qs, answers, model.ScoreResult{QuestionResults: map[string]bool{"q1": false}})

	assert.False(t, items[0].IsCorrect, "graded result wins")
	assert.False(t, items[1].IsCorrect)
	assert.True(t, items[2].IsCorrect)
}
