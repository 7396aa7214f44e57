package notify

import (
	"context"
	"sync"

	"lessonquiz/internal/logger"
	"lessonquiz/internal/model"
)

// ConsoleNotifier logs notifications instead of sending them and keeps a copy.
type ConsoleNotifier struct {
	subjPrefix string
	log        logger.Logger

	mu   sync.Mutex
	sent []Message
}

var _ Notifier = (*ConsoleNotifier)(nil)

func NewConsoleNotifier(appName string, log logger.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{
		subjPrefix: "[" + appName + "] ",
		log:        log,
	}
}

func (n *ConsoleNotifier) QuizPassed(_ context.Context, learner model.Learner, lessonID string, result model.ScoreResult) error {
	if learner.Email == "" {
		return nil
	}
	msg := passedMessage(learner, lessonID, result)
	msg.Subject = n.subjPrefix + msg.Subject
	n.log.Info("[Notify] "+msg.Subject, msg.To.String())

	n.mu.Lock()
	n.sent = append(n.sent, msg)
	n.mu.Unlock()
	return nil
}

// Sent returns the messages recorded so far.
func (n *ConsoleNotifier) Sent() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Message(nil), n.sent...)
}
