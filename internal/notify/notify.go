// Package notify tells learners about quiz outcomes.
package notify

import (
	"context"
	"fmt"
	"net/mail"

	"lessonquiz/internal/model"
)

// Notifier is called by the quiz service after a passing attempt.
type Notifier interface {
	QuizPassed(ctx context.Context, learner model.Learner, lessonID string, result model.ScoreResult) error
}

// Message is a rendered notification.
type Message struct {
	To      mail.Address
	Subject string
	Text    string
	HTML    string
}

func passedMessage(learner model.Learner, lessonID string, result model.ScoreResult) Message {
	text := fmt.Sprintf(
		"Hi %s,\n\nYou passed the quiz for lesson %s with %d%% (%d of %d correct).\n",
		learner.Name, lessonID, result.Score, result.CorrectAnswers, result.TotalQuestions,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>You passed the quiz for lesson <b>%s</b> with <b>%d%%</b> (%d of %d correct).</p>",
		learner.Name, lessonID, result.Score, result.CorrectAnswers, result.TotalQuestions,
	)
	return Message{
		To:      mail.Address{Name: learner.Name, Address: learner.Email},
		Subject: "Quiz passed: lesson " + lessonID,
		Text:    text,
		HTML:    html,
	}
}
