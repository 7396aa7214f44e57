package model

import (
	"strconv"
	"time"
)

// LessonQuestion is a quiz question as stored and served by the quiz service.
// CorrectAnswer is the position of the right option, as a decimal string.
type LessonQuestion struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	LessonID      string    `json:"lessonId" bson:"lessonId"`
	Position      int       `json:"position" bson:"position"`
	QuestionText  string    `json:"questionText" bson:"questionText"`
	Options       []string  `json:"options" bson:"options"`
	CorrectAnswer string    `json:"correctAnswer" bson:"correctAnswer"`
	Explanation   string    `json:"explanation,omitempty" bson:"explanation,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ToQuestion converts the stored form into the normalized learner form.
func (q *LessonQuestion) ToQuestion() Question {
	return Question{
		ID:            q.ID,
		Text:          q.QuestionText,
		Options:       PositionalOptions(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}
}

// Option is one answer choice. ID is the option's position in the server
// array, never a server-side option id.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is the normalized question a learner answers.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"questionText"`
	Options       []Option `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// HasOption reports whether optionID names one of the question's options.
func (q Question) HasOption(optionID string) bool {
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// PositionalOptions numbers texts "0".."n-1" in array order.
func PositionalOptions(texts []string) []Option {
	opts := make([]Option, len(texts))
	for i, t := range texts {
		opts[i] = Option{ID: strconv.Itoa(i), Text: t}
	}
	return opts
}

// QuestionInput is the admin payload for creating or updating a question.
type QuestionInput struct {
	LessonID      string   `json:"lessonId" validate:"required"`
	QuestionText  string   `json:"questionText" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required,numeric"`
	Explanation   string   `json:"explanation"`
}

// ReorderRequest lists every question of a lesson in its new order.
type ReorderRequest struct {
	QuestionIDs []string `json:"questionIds" validate:"required,min=1,dive,required"`
}
