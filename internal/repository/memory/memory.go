// Package memory holds in-process implementations of the repositories and
// caches, used with STORAGE=memory and by tests.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"lessonquiz/internal/model"
	"lessonquiz/internal/repository"
)

// DB is the shared in-memory store.
type DB struct {
	mutex     sync.RWMutex
	questions map[string]*model.LessonQuestion
	attempts  []*model.Attempt
	progress  map[string]*model.LessonProgress // learnerID + "/" + lessonID
	pkCount   int
}

func Open() *DB {
	return &DB{
		questions: make(map[string]*model.LessonQuestion),
		progress:  make(map[string]*model.LessonProgress),
	}
}

type questionRepo struct {
	db *DB
}

func NewQuestionRepo(db *DB) repository.QuestionRepo {
	return &questionRepo{db: db}
}

func copyQuestion(q *model.LessonQuestion) *model.LessonQuestion {
	c := *q
	c.Options = append([]string(nil), q.Options...)
	return &c
}

func (r *questionRepo) Create(_ context.Context, question *model.LessonQuestion) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if question.ID == "" {
		r.db.pkCount++
		question.ID = "q" + strconv.Itoa(r.db.pkCount)
	}
	now := time.Now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now
	r.db.questions[question.ID] = copyQuestion(question)
	return nil
}

func (r *questionRepo) GetByID(_ context.Context, id string) (*model.LessonQuestion, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if q, ok := r.db.questions[id]; ok {
		return copyQuestion(q), nil
	}
	return nil, nil
}

func (r *questionRepo) GetByLesson(_ context.Context, lessonID string) ([]*model.LessonQuestion, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	questions := make([]*model.LessonQuestion, 0)
	for _, q := range r.db.questions {
		if q.LessonID == lessonID {
			questions = append(questions, copyQuestion(q))
		}
	}
	sort.Slice(questions, func(i, j int) bool {
		if questions[i].Position != questions[j].Position {
			return questions[i].Position < questions[j].Position
		}
		return questions[i].ID < questions[j].ID
	})
	return questions, nil
}

func (r *questionRepo) Update(_ context.Context, question *model.LessonQuestion) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.questions[question.ID]; ok {
		question.UpdatedAt = time.Now().UTC()
		r.db.questions[question.ID] = copyQuestion(question)
	}
	return nil
}

func (r *questionRepo) Delete(_ context.Context, id string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	delete(r.db.questions, id)
	return nil
}

func (r *questionRepo) Reorder(_ context.Context, lessonID string, ids []string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	for i, id := range ids {
		if q, ok := r.db.questions[id]; ok && q.LessonID == lessonID {
			q.Position = i
			q.UpdatedAt = time.Now().UTC()
		}
	}
	return nil
}

func (r *questionRepo) NextPosition(_ context.Context, lessonID string) (int, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	next := 0
	for _, q := range r.db.questions {
		if q.LessonID == lessonID && q.Position >= next {
			next = q.Position + 1
		}
	}
	return next, nil
}

type attemptRepo struct {
	db *DB
}

func NewAttemptRepo(db *DB) repository.AttemptRepo {
	return &attemptRepo{db: db}
}

func (r *attemptRepo) Create(_ context.Context, attempt *model.Attempt) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if attempt.SubmittedAt.IsZero() {
		attempt.SubmittedAt = time.Now().UTC()
	}
	c := *attempt
	r.db.attempts = append(r.db.attempts, &c)
	return nil
}

// query returns matching attempts, newest first.
func (r *attemptRepo) query(match func(*model.Attempt) bool) []*model.Attempt {
	attempts := make([]*model.Attempt, 0)
	for i := len(r.db.attempts) - 1; i >= 0; i-- {
		if a := r.db.attempts[i]; match(a) {
			c := *a
			attempts = append(attempts, &c)
		}
	}
	return attempts
}

func (r *attemptRepo) GetByLesson(_ context.Context, lessonID string) ([]*model.Attempt, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.query(func(a *model.Attempt) bool { return a.LessonID == lessonID }), nil
}

func (r *attemptRepo) GetByLearner(_ context.Context, learnerID, lessonID string) ([]*model.Attempt, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return r.query(func(a *model.Attempt) bool {
		return a.LearnerID == learnerID && a.LessonID == lessonID
	}), nil
}

func (r *attemptRepo) HasPassed(_ context.Context, learnerID, lessonID string) (bool, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	passed := r.query(func(a *model.Attempt) bool {
		return a.LearnerID == learnerID && a.LessonID == lessonID && a.Passed
	})
	return len(passed) > 0, nil
}

type progressRepo struct {
	db *DB
}

func NewProgressRepo(db *DB) repository.ProgressRepo {
	return &progressRepo{db: db}
}

func (r *progressRepo) Complete(_ context.Context, learnerID, lessonID string) (*model.LessonProgress, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	key := learnerID + "/" + lessonID
	p, ok := r.db.progress[key]
	if !ok {
		p = &model.LessonProgress{LearnerID: learnerID, LessonID: lessonID, CompletedAt: time.Now().UTC()}
		r.db.progress[key] = p
	}
	c := *p
	return &c, nil
}

func (r *progressRepo) GetByLearner(_ context.Context, learnerID string) ([]*model.LessonProgress, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	progress := make([]*model.LessonProgress, 0)
	for _, p := range r.db.progress {
		if p.LearnerID == learnerID {
			c := *p
			progress = append(progress, &c)
		}
	}
	sort.Slice(progress, func(i, j int) bool {
		if !progress[i].CompletedAt.Equal(progress[j].CompletedAt) {
			return progress[i].CompletedAt.Before(progress[j].CompletedAt)
		}
		return progress[i].LessonID < progress[j].LessonID
	})
	return progress, nil
}
