package attempt

import "lessonquiz/internal/model"

// MockQuestions is the fixed demo quiz used when the service is unreachable
// in offline mode.
func MockQuestions() []model.Question {
	return []model.Question{
		{
			ID:            "mock-1",
			Text:          "Which keyword starts a goroutine?",
			Options:       model.PositionalOptions([]string{"defer", "go", "chan", "select"}),
			CorrectAnswer: "1",
			Explanation:   "The go statement runs a function call in a new goroutine.",
		},
		{
			ID:            "mock-2",
			Text:          "What does a nil map return when you read a missing key?",
			Options:       model.PositionalOptions([]string{"The zero value", "A panic", "An error", "nil, always"}),
			CorrectAnswer: "0",
			Explanation:   "Reads from a nil map behave like reads from an empty map.",
		},
		{
			ID:            "mock-3",
			Text:          "Which package provides the Context type?",
			Options:       model.PositionalOptions([]string{"sync", "runtime", "os", "context"}),
			CorrectAnswer: "3",
			Explanation:   "context.Context carries deadlines and cancellation.",
		},
	}
}
