package model

import "time"

// SubmitRequest is the body of POST /quizzes/submit.
type SubmitRequest struct {
	LessonID string            `json:"lessonId" validate:"required"`
	Answers  map[string]string `json:"answers" validate:"required,min=1"`
}

// ScoreResult is the graded outcome of one attempt.
type ScoreResult struct {
	AttemptID       string          `json:"attemptId,omitempty"`
	Score           int             `json:"score"`
	TotalQuestions  int             `json:"totalQuestions"`
	CorrectAnswers  int             `json:"correctAnswers"`
	Passed          bool            `json:"passed"`
	QuestionResults map[string]bool `json:"questionResults"`
}

// Attempt is a persisted, server-graded submission.
type Attempt struct {
	ID              string            `json:"id" bson:"_id"`
	LessonID        string            `json:"lessonId" bson:"lessonId"`
	LearnerID       string            `json:"learnerId" bson:"learnerId"`
	LearnerName     string            `json:"learnerName,omitempty" bson:"learnerName,omitempty"`
	Answers         map[string]string `json:"answers" bson:"answers"`
	Score           int               `json:"score" bson:"score"`
	TotalQuestions  int               `json:"totalQuestions" bson:"totalQuestions"`
	CorrectAnswers  int               `json:"correctAnswers" bson:"correctAnswers"`
	Passed          bool              `json:"passed" bson:"passed"`
	QuestionResults map[string]bool   `json:"questionResults" bson:"questionResults"`
	SubmittedAt     time.Time         `json:"submittedAt" bson:"submittedAt"`
}

// Result returns the learner-facing score summary of the attempt.
func (a *Attempt) Result() ScoreResult {
	return ScoreResult{
		AttemptID:       a.ID,
		Score:           a.Score,
		TotalQuestions:  a.TotalQuestions,
		CorrectAnswers:  a.CorrectAnswers,
		Passed:          a.Passed,
		QuestionResults: a.QuestionResults,
	}
}

// LessonProgress records that a learner completed a lesson.
type LessonProgress struct {
	LearnerID   string    `json:"learnerId" bson:"learnerId"`
	LessonID    string    `json:"lessonId" bson:"lessonId"`
	CompletedAt time.Time `json:"completedAt" bson:"completedAt"`
}

// BoardEntry is one row of a lesson's best-score board.
type BoardEntry struct {
	LearnerID string `json:"learnerId"`
	Name      string `json:"name,omitempty"`
	Score     int    `json:"score"`
	Rank      int    `json:"rank"`
}
