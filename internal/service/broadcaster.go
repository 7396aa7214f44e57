package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToLesson(lessonID string, msgType string, payload interface{})
}

// MsgAttemptSubmitted is sent to lesson watchers after every graded attempt.
const MsgAttemptSubmitted = "attempt_submitted"
