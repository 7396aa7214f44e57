// Package attempt holds the state of one learner's pass through a lesson
// quiz: the loaded questions, the answers and review flags, the cursor, and
// the ANSWERING -> SUBMITTED lifecycle.
package attempt

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"lessonquiz/internal/logger"
	"lessonquiz/internal/model"
	"lessonquiz/internal/scoring"
)

var (
	ErrNoQuestions      = errors.New("lesson has no quiz questions")
	ErrIncomplete       = errors.New("every question must be answered before submitting")
	ErrAlreadySubmitted = errors.New("attempt already submitted")
	ErrSubmitInProgress = errors.New("a submission is already in flight")
	ErrNotSubmitted     = errors.New("attempt has not been submitted")
	ErrUnknownQuestion  = errors.New("question is not part of this quiz")
	ErrUnknownOption    = errors.New("option does not belong to the question")
	ErrOutOfRange       = errors.New("question index out of range")
)

// Phase is the attempt lifecycle state.
type Phase int

const (
	Answering Phase = iota
	Submitted
)

func (p Phase) String() string {
	if p == Submitted {
		return "SUBMITTED"
	}
	return "ANSWERING"
}

// QuestionSource loads a lesson's normalized questions.
type QuestionSource interface {
	LessonQuestions(ctx context.Context, lessonID string) ([]model.Question, error)
}

// Submitter grades a complete answer map.
type Submitter interface {
	SubmitQuiz(ctx context.Context, lessonID string, answers map[string]string) (*model.ScoreResult, error)
}

// Result is a graded attempt. Verified is false when the grade was computed
// locally in offline mode.
type Result struct {
	model.ScoreResult
	Verified bool `json:"verified"`
}

// Options tune an attempt.
type Options struct {
	// Offline enables the demo mode: mock questions when loading fails and
	// local grading when submitting fails.
	Offline bool
	// PassThreshold is used for local grading; zero means the default 0.70.
	PassThreshold float64
	// OnPassed runs once after a server-verified passing submit.
	OnPassed func(ctx context.Context, lessonID string, result Result)
	Logger   logger.Logger
}

// Attempt is one learner's pass through a lesson quiz. It is safe for
// concurrent use.
type Attempt struct {
	mu sync.Mutex

	lessonID  string
	questions []model.Question
	position  map[string]int

	answers map[string]string
	flagged map[string]bool
	current int

	phase      Phase
	result     *Result
	submitting bool

	// mock questions loaded; nothing on the server can grade them
	offline bool

	submitter Submitter
	opts      Options
	log       logger.Logger
}

// New starts an attempt over already-loaded questions. Questions repeating an
// earlier id are dropped.
func New(lessonID string, questions []model.Question, submitter Submitter, opts Options) (*Attempt, error) {
	if opts.PassThreshold <= 0 {
		opts.PassThreshold = scoring.DefaultPassThreshold
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	a := &Attempt{
		lessonID:  lessonID,
		position:  make(map[string]int, len(questions)),
		submitter: submitter,
		opts:      opts,
		log:       log,
	}
	for _, q := range questions {
		if _, dup := a.position[q.ID]; dup {
			log.Warn("[Attempt] duplicate question dropped", lessonID, q.ID)
			continue
		}
		a.position[q.ID] = len(a.questions)
		q.Options = append([]model.Option(nil), q.Options...)
		a.questions = append(a.questions, q)
	}
	if len(a.questions) == 0 {
		return nil, ErrNoQuestions
	}
	a.clear()
	return a, nil
}

// clear empties answers and flags and rewinds the cursor. Caller holds mu
// or owns a.
func (a *Attempt) clear() {
	a.answers = make(map[string]string, len(a.questions))
	for _, q := range a.questions {
		a.answers[q.ID] = ""
	}
	a.flagged = make(map[string]bool)
	a.current = 0
	a.phase = Answering
	a.result = nil
}

// LessonID returns the lesson the attempt belongs to.
func (a *Attempt) LessonID() string {
	return a.lessonID
}

// Offline reports whether the attempt runs on the built-in mock questions.
func (a *Attempt) Offline() bool {
	return a.offline
}

// Questions returns the questions in quiz order.
func (a *Attempt) Questions() []model.Question {
	out := make([]model.Question, len(a.questions))
	copy(out, a.questions)
	return out
}

func (a *Attempt) QuestionCount() int {
	return len(a.questions)
}

func (a *Attempt) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// SetAnswer selects optionID for the question, replacing any earlier choice.
func (a *Attempt) SetAnswer(questionID, optionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase != Answering {
		return ErrAlreadySubmitted
	}
	if a.submitting {
		return ErrSubmitInProgress
	}
	i, ok := a.position[questionID]
	if !ok {
		return errors.Wrapf(ErrUnknownQuestion, "question %s", questionID)
	}
	if !a.questions[i].HasOption(optionID) {
		return errors.Wrapf(ErrUnknownOption, "question %s option %q", questionID, optionID)
	}
	a.answers[questionID] = optionID
	return nil
}

// Answer returns the selected option id, "" when unanswered.
func (a *Attempt) Answer(questionID string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.answers[questionID]
}

// Answers returns a copy of the answer map.
func (a *Attempt) Answers() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.copyAnswers()
}

func (a *Attempt) copyAnswers() map[string]string {
	out := make(map[string]string, len(a.answers))
	for k, v := range a.answers {
		out[k] = v
	}
	return out
}

func (a *Attempt) AnsweredCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.answeredCount()
}

func (a *Attempt) answeredCount() int {
	n := 0
	for _, v := range a.answers {
		if v != "" {
			n++
		}
	}
	return n
}

// CanSubmit reports whether Submit would be attempted right now.
func (a *Attempt) CanSubmit() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.canSubmit()
}

func (a *Attempt) canSubmit() bool {
	return a.phase == Answering && !a.submitting && a.answeredCount() == len(a.questions)
}

// Result returns the graded result once the attempt is submitted.
func (a *Attempt) Result() (Result, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result == nil {
		return Result{}, false
	}
	return *a.result, true
}

// Submit grades the attempt. A server failure leaves the attempt ANSWERING
// and is returned, unless offline mode is on, in which case the attempt is
// graded locally and marked unverified.
func (a *Attempt) Submit(ctx context.Context) (Result, error) {
	a.mu.Lock()
	switch {
	case a.phase == Submitted:
		a.mu.Unlock()
		return Result{}, ErrAlreadySubmitted
	case a.submitting:
		a.mu.Unlock()
		return Result{}, ErrSubmitInProgress
	case !a.canSubmit():
		a.mu.Unlock()
		return Result{}, ErrIncomplete
	}
	a.submitting = true
	answers := a.copyAnswers()
	a.mu.Unlock()

	res, err := a.grade(ctx, answers)

	a.mu.Lock()
	a.submitting = false
	if err != nil {
		a.mu.Unlock()
		return Result{}, err
	}
	a.result = &res
	a.phase = Submitted
	a.mu.Unlock()

	a.log.Info("[Attempt] submitted", a.lessonID, res.Score, res.Passed, res.Verified)
	if res.Passed && res.Verified && a.opts.OnPassed != nil {
		a.opts.OnPassed(ctx, a.lessonID, res)
	}
	return res, nil
}

func (a *Attempt) grade(ctx context.Context, answers map[string]string) (Result, error) {
	if a.offline {
		return a.gradeLocally(answers), nil
	}
	if a.submitter == nil {
		return Result{}, errors.New("attempt has no submitter")
	}

	sr, err := a.submitter.SubmitQuiz(ctx, a.lessonID, answers)
	if err == nil {
		return Result{ScoreResult: *sr, Verified: true}, nil
	}
	if !a.opts.Offline {
		return Result{}, errors.Wrap(err, "submit quiz")
	}
	a.log.Warn("[Attempt] submit failed, grading locally", a.lessonID, err)
	return a.gradeLocally(answers), nil
}

func (a *Attempt) gradeLocally(answers map[string]string) Result {
	return Result{ScoreResult: scoring.GradeAnswers(a.questions, answers, a.opts.PassThreshold)}
}

// Reset starts the quiz over on the same questions: answers and flags are
// cleared and the cursor returns to the first question. It fails only while
// a submission is in flight.
func (a *Attempt) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.submitting {
		return ErrSubmitInProgress
	}
	a.clear()
	return nil
}
