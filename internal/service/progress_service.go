package service

import (
	"context"

	"github.com/pkg/errors"

	"lessonquiz/internal/model"
	"lessonquiz/internal/repository"
)

// ProgressService records lesson completions
type ProgressService struct {
	progressRepo repository.ProgressRepo
	attemptRepo  repository.AttemptRepo
	quizSvc      *QuizService
}

// NewProgressService creates a new progress service
func NewProgressService(progressRepo repository.ProgressRepo, attemptRepo repository.AttemptRepo, quizSvc *QuizService) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		attemptRepo:  attemptRepo,
		quizSvc:      quizSvc,
	}
}

// CompleteLesson marks a lesson complete. A lesson with a quiz can only be
// completed after a passing attempt has been stored for the learner.
func (s *ProgressService) CompleteLesson(ctx context.Context, learnerID, lessonID string) (*model.LessonProgress, error) {
	questions, err := s.quizSvc.GetLessonQuestions(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if len(questions) > 0 {
		passed, err := s.attemptRepo.HasPassed(ctx, learnerID, lessonID)
		if err != nil {
			return nil, err
		}
		if !passed {
			return nil, errors.Wrapf(ErrQuizNotPassed, "lesson %s", lessonID)
		}
	}
	return s.progressRepo.Complete(ctx, learnerID, lessonID)
}

// ListCompleted returns the learner's completed lessons, oldest first.
func (s *ProgressService) ListCompleted(ctx context.Context, learnerID string) ([]*model.LessonProgress, error) {
	return s.progressRepo.GetByLearner(ctx, learnerID)
}
