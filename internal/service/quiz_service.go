package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"lessonquiz/internal/cache"
	"lessonquiz/internal/logger"
	"lessonquiz/internal/model"
	"lessonquiz/internal/notify"
	"lessonquiz/internal/repository"
	"lessonquiz/internal/scoring"
)

// QuizService serves lesson quizzes and grades submissions
type QuizService struct {
	questionRepo  repository.QuestionRepo
	attemptRepo   repository.AttemptRepo
	questionCache cache.QuestionCache
	board         cache.BoardCache
	notifier      notify.Notifier
	broadcaster   Broadcaster
	threshold     float64
	log           logger.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(
	questionRepo repository.QuestionRepo,
	attemptRepo repository.AttemptRepo,
	questionCache cache.QuestionCache,
	board cache.BoardCache,
	notifier notify.Notifier,
	threshold float64,
	log logger.Logger,
) *QuizService {
	return &QuizService{
		questionRepo:  questionRepo,
		attemptRepo:   attemptRepo,
		questionCache: questionCache,
		board:         board,
		notifier:      notifier,
		threshold:     threshold,
		log:           log,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *QuizService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// PassThreshold returns the share of correct answers needed to pass.
func (s *QuizService) PassThreshold() float64 {
	return s.threshold
}

// GetLessonQuestions returns the lesson's questions in order, read through the cache.
func (s *QuizService) GetLessonQuestions(ctx context.Context, lessonID string) ([]*model.LessonQuestion, error) {
	cached, err := s.questionCache.Get(ctx, lessonID)
	if err != nil {
		s.log.Warn("[Quiz] question cache read failed", lessonID, err)
	} else if cached != nil {
		return cached, nil
	}

	questions, err := s.questionRepo.GetByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if err := s.questionCache.Set(ctx, lessonID, questions); err != nil {
		s.log.Warn("[Quiz] question cache write failed", lessonID, err)
	}
	return questions, nil
}

// Submit grades a complete answer map, stores the attempt and returns the score.
func (s *QuizService) Submit(ctx context.Context, learner model.Learner, req *model.SubmitRequest) (*model.ScoreResult, error) {
	stored, err := s.GetLessonQuestions(ctx, req.LessonID)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, errors.Wrapf(ErrLessonNotFound, "lesson %s", req.LessonID)
	}

	questions := make([]model.Question, len(stored))
	known := make(map[string]bool, len(stored))
	for i, q := range stored {
		questions[i] = q.ToQuestion()
		known[q.ID] = true
	}
	for qid := range req.Answers {
		if !known[qid] {
			return nil, errors.Wrapf(ErrUnknownQuestion, "question %s", qid)
		}
	}
	for _, q := range questions {
		if req.Answers[q.ID] == "" {
			return nil, errors.Wrapf(ErrIncompleteAnswers, "question %s unanswered", q.ID)
		}
	}

	result := scoring.GradeAnswers(questions, req.Answers, s.threshold)
	attempt := &model.Attempt{
		ID:              uuid.New().String(),
		LessonID:        req.LessonID,
		LearnerID:       learner.ID,
		LearnerName:     learner.Name,
		Answers:         req.Answers,
		Score:           result.Score,
		TotalQuestions:  result.TotalQuestions,
		CorrectAnswers:  result.CorrectAnswers,
		Passed:          result.Passed,
		QuestionResults: result.QuestionResults,
		SubmittedAt:     time.Now().UTC(),
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, err
	}
	s.log.Info("[Quiz] attempt graded", attempt.ID, req.LessonID, learner)

	if err := s.board.Record(ctx, req.LessonID, learner, attempt.Score); err != nil {
		s.log.Warn("[Quiz] board update failed", req.LessonID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToLesson(req.LessonID, MsgAttemptSubmitted, map[string]interface{}{
			"attemptId":      attempt.ID,
			"learnerId":      learner.ID,
			"learnerName":    learner.Name,
			"score":          attempt.Score,
			"correctAnswers": attempt.CorrectAnswers,
			"totalQuestions": attempt.TotalQuestions,
			"passed":         attempt.Passed,
		})
	}

	res := attempt.Result()
	if res.Passed && s.notifier != nil {
		if err := s.notifier.QuizPassed(ctx, learner, req.LessonID, res); err != nil {
			s.log.Error("[Quiz] passed notification failed", err, learner)
		}
	}
	return &res, nil
}

func checkCorrectAnswer(in *model.QuestionInput) error {
	idx, err := strconv.Atoi(in.CorrectAnswer)
	if err != nil || idx < 0 || idx >= len(in.Options) {
		return ErrInvalidCorrectAnswer
	}
	// canonical form, e.g. "01" -> "1"
	in.CorrectAnswer = strconv.Itoa(idx)
	return nil
}

func (s *QuizService) invalidate(ctx context.Context, lessonID string) {
	if err := s.questionCache.Invalidate(ctx, lessonID); err != nil {
		s.log.Warn("[Quiz] question cache invalidation failed", lessonID, err)
	}
}

// CreateQuestion appends a question to the end of its lesson.
func (s *QuizService) CreateQuestion(ctx context.Context, in model.QuestionInput) (*model.LessonQuestion, error) {
	if err := checkCorrectAnswer(&in); err != nil {
		return nil, err
	}
	pos, err := s.questionRepo.NextPosition(ctx, in.LessonID)
	if err != nil {
		return nil, err
	}
	q := &model.LessonQuestion{
		LessonID:      in.LessonID,
		Position:      pos,
		QuestionText:  in.QuestionText,
		Options:       in.Options,
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   in.Explanation,
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	s.invalidate(ctx, q.LessonID)
	return q, nil
}

// UpdateQuestion replaces the content of a question. Moving a question to
// another lesson appends it there.
func (s *QuizService) UpdateQuestion(ctx context.Context, id string, in model.QuestionInput) (*model.LessonQuestion, error) {
	if err := checkCorrectAnswer(&in); err != nil {
		return nil, err
	}
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, errors.Wrapf(ErrQuestionNotFound, "question %s", id)
	}

	oldLesson := q.LessonID
	if in.LessonID != oldLesson {
		if q.Position, err = s.questionRepo.NextPosition(ctx, in.LessonID); err != nil {
			return nil, err
		}
	}
	q.LessonID = in.LessonID
	q.QuestionText = in.QuestionText
	q.Options = in.Options
	q.CorrectAnswer = in.CorrectAnswer
	q.Explanation = in.Explanation
	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	s.invalidate(ctx, oldLesson)
	if oldLesson != q.LessonID {
		s.invalidate(ctx, q.LessonID)
	}
	return q, nil
}

// DeleteQuestion removes a question from its lesson.
func (s *QuizService) DeleteQuestion(ctx context.Context, id string) error {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if q == nil {
		return errors.Wrapf(ErrQuestionNotFound, "question %s", id)
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, q.LessonID)
	return nil
}

// ReorderQuestions applies a drag-and-drop order. ids must be a permutation
// of the lesson's question ids.
func (s *QuizService) ReorderQuestions(ctx context.Context, lessonID string, ids []string) ([]*model.LessonQuestion, error) {
	current, err := s.questionRepo.GetByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if len(current) == 0 {
		return nil, errors.Wrapf(ErrLessonNotFound, "lesson %s", lessonID)
	}
	if len(ids) != len(current) {
		return nil, ErrInvalidOrder
	}
	remaining := make(map[string]bool, len(current))
	for _, q := range current {
		remaining[q.ID] = true
	}
	for _, id := range ids {
		if !remaining[id] {
			return nil, ErrInvalidOrder
		}
		delete(remaining, id)
	}

	if err := s.questionRepo.Reorder(ctx, lessonID, ids); err != nil {
		return nil, err
	}
	s.invalidate(ctx, lessonID)
	return s.questionRepo.GetByLesson(ctx, lessonID)
}

// ListAttempts returns every attempt of a lesson, newest first.
func (s *QuizService) ListAttempts(ctx context.Context, lessonID string) ([]*model.Attempt, error) {
	return s.attemptRepo.GetByLesson(ctx, lessonID)
}

// LearnerAttempts returns one learner's attempts at a lesson, newest first.
func (s *QuizService) LearnerAttempts(ctx context.Context, learnerID, lessonID string) ([]*model.Attempt, error) {
	return s.attemptRepo.GetByLearner(ctx, learnerID, lessonID)
}

// Leaderboard returns the best scores of a lesson.
func (s *QuizService) Leaderboard(ctx context.Context, lessonID string, top int) ([]model.BoardEntry, error) {
	return s.board.Top(ctx, lessonID, top)
}
