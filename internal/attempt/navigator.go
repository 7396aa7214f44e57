package attempt

import (
	"github.com/pkg/errors"

	"lessonquiz/internal/model"
)

func (a *Attempt) CurrentIndex() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Current returns the question under the cursor.
func (a *Attempt) Current() model.Question {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.questions[a.current]
}

// Next moves forward one question; it reports false at the last question.
func (a *Attempt) Next() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current >= len(a.questions)-1 {
		return false
	}
	a.current++
	return true
}

// Prev moves back one question; it reports false at the first question.
func (a *Attempt) Prev() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == 0 {
		return false
	}
	a.current--
	return true
}

// JumpTo moves the cursor to a zero-based index.
func (a *Attempt) JumpTo(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if index < 0 || index >= len(a.questions) {
		return errors.Wrapf(ErrOutOfRange, "index %d of %d", index, len(a.questions))
	}
	a.current = index
	return nil
}

// ToggleFlag marks or unmarks a question for review and returns the new state.
// Flags are frozen once the attempt is submitted.
func (a *Attempt) ToggleFlag(questionID string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase != Answering {
		return a.flagged[questionID], ErrAlreadySubmitted
	}
	if _, ok := a.position[questionID]; !ok {
		return false, errors.Wrapf(ErrUnknownQuestion, "question %s", questionID)
	}
	if a.flagged[questionID] {
		delete(a.flagged, questionID)
		return false, nil
	}
	a.flagged[questionID] = true
	return true, nil
}

func (a *Attempt) IsFlagged(questionID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flagged[questionID]
}

func (a *Attempt) FlaggedCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.flagged)
}
