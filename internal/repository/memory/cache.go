package memory

import (
	"context"
	"sort"
	"sync"

	"lessonquiz/internal/cache"
	"lessonquiz/internal/model"
)

type questionCache struct {
	mutex   sync.RWMutex
	lessons map[string][]*model.LessonQuestion
}

// NewQuestionCache returns a process-local question cache without expiry.
func NewQuestionCache() cache.QuestionCache {
	return &questionCache{lessons: make(map[string][]*model.LessonQuestion)}
}

func (c *questionCache) Get(_ context.Context, lessonID string) ([]*model.LessonQuestion, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	qs, ok := c.lessons[lessonID]
	if !ok {
		return nil, nil
	}
	out := make([]*model.LessonQuestion, len(qs))
	for i, q := range qs {
		out[i] = copyQuestion(q)
	}
	return out, nil
}

func (c *questionCache) Set(_ context.Context, lessonID string, questions []*model.LessonQuestion) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	stored := make([]*model.LessonQuestion, len(questions))
	for i, q := range questions {
		stored[i] = copyQuestion(q)
	}
	c.lessons[lessonID] = stored
	return nil
}

func (c *questionCache) Invalidate(_ context.Context, lessonID string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.lessons, lessonID)
	return nil
}

type boardCache struct {
	mutex  sync.RWMutex
	scores map[string]map[string]int // lessonID -> learnerID -> best
	names  map[string]string
}

// NewBoardCache returns a process-local best-score board.
func NewBoardCache() cache.BoardCache {
	return &boardCache{
		scores: make(map[string]map[string]int),
		names:  make(map[string]string),
	}
}

func (c *boardCache) Record(_ context.Context, lessonID string, learner model.Learner, score int) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	lesson, ok := c.scores[lessonID]
	if !ok {
		lesson = make(map[string]int)
		c.scores[lessonID] = lesson
	}
	if best, ok := lesson[learner.ID]; !ok || score > best {
		lesson[learner.ID] = score
	}
	if learner.Name != "" {
		c.names[learner.ID] = learner.Name
	}
	return nil
}

func (c *boardCache) ranked(lessonID string) []model.BoardEntry {
	entries := make([]model.BoardEntry, 0, len(c.scores[lessonID]))
	for id, score := range c.scores[lessonID] {
		entries = append(entries, model.BoardEntry{LearnerID: id, Name: c.names[id], Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].LearnerID > entries[j].LearnerID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (c *boardCache) Top(_ context.Context, lessonID string, limit int) ([]model.BoardEntry, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entries := c.ranked(lessonID)
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (c *boardCache) Rank(_ context.Context, lessonID, learnerID string) (int64, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for _, e := range c.ranked(lessonID) {
		if e.LearnerID == learnerID {
			return int64(e.Rank), nil
		}
	}
	return -1, nil
}
