package service

import "github.com/pkg/errors"

var (
	ErrLessonNotFound       = errors.New("lesson has no quiz")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrUnknownQuestion      = errors.New("answer refers to a question outside the lesson")
	ErrIncompleteAnswers    = errors.New("every question must be answered")
	ErrInvalidCorrectAnswer = errors.New("correctAnswer must be the index of an option")
	ErrInvalidOrder         = errors.New("order must list every question of the lesson exactly once")
	ErrQuizNotPassed        = errors.New("lesson quiz has not been passed")
)
