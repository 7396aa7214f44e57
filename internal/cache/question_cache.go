package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"lessonquiz/internal/model"
)

// QuestionCache holds each lesson's ordered question list
type QuestionCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, lessonID string) ([]*model.LessonQuestion, error)
	Set(ctx context.Context, lessonID string, questions []*model.LessonQuestion) error
	Invalidate(ctx context.Context, lessonID string) error
}

type questionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuestionCache creates a new question cache
func NewQuestionCache(client *redis.Client, ttl time.Duration) QuestionCache {
	return &questionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *questionCache) key(lessonID string) string {
	return fmt.Sprintf("lesson:%s:questions", lessonID)
}

func (c *questionCache) Get(ctx context.Context, lessonID string) ([]*model.LessonQuestion, error) {
	data, err := c.client.Get(ctx, c.key(lessonID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get cached questions of lesson %s", lessonID)
	}
	questions := make([]*model.LessonQuestion, 0)
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, errors.Wrap(err, "decode cached questions")
	}
	return questions, nil
}

func (c *questionCache) Set(ctx context.Context, lessonID string, questions []*model.LessonQuestion) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(lessonID), data, c.ttl).Err()
}

func (c *questionCache) Invalidate(ctx context.Context, lessonID string) error {
	return c.client.Del(ctx, c.key(lessonID)).Err()
}
