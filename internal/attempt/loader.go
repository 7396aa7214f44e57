package attempt

import (
	"context"

	"github.com/pkg/errors"

	"lessonquiz/internal/logger"
)

// Load fetches the lesson's questions and starts an attempt. In offline mode
// a failed fetch falls back to the built-in mock questions.
func Load(ctx context.Context, src QuestionSource, sub Submitter, lessonID string, opts Options) (*Attempt, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	questions, err := src.LessonQuestions(ctx, lessonID)
	if err != nil {
		if !opts.Offline {
			return nil, errors.Wrapf(err, "load lesson %s", lessonID)
		}
		log.Warn("[Attempt] loading questions failed, using mock quiz", lessonID, err)
		a, err := New(lessonID, MockQuestions(), sub, opts)
		if err != nil {
			return nil, err
		}
		a.offline = true
		return a, nil
	}
	return New(lessonID, questions, sub, opts)
}
