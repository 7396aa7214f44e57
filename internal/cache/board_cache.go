package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lessonquiz/internal/model"
)

// BoardCache keeps each learner's best score per lesson in a Redis ZSET
type BoardCache interface {
	// Record keeps the higher of the stored and the given score.
	Record(ctx context.Context, lessonID string, learner model.Learner, score int) error
	Top(ctx context.Context, lessonID string, limit int) ([]model.BoardEntry, error)
	// Rank is 1-indexed; -1 when the learner has no score.
	Rank(ctx context.Context, lessonID, learnerID string) (int64, error)
}

type boardCache struct {
	client *redis.Client
}

// NewBoardCache creates a new best-score board
func NewBoardCache(client *redis.Client) BoardCache {
	return &boardCache{
		client: client,
	}
}

func (c *boardCache) key(lessonID string) string {
	return fmt.Sprintf("lesson:%s:best", lessonID)
}

func (c *boardCache) namesKey(lessonID string) string {
	return fmt.Sprintf("lesson:%s:names", lessonID)
}

func (c *boardCache) Record(ctx context.Context, lessonID string, learner model.Learner, score int) error {
	pipe := c.client.TxPipeline()
	pipe.ZAddGT(ctx, c.key(lessonID), redis.Z{
		Score:  float64(score),
		Member: learner.ID,
	})
	if learner.Name != "" {
		pipe.HSet(ctx, c.namesKey(lessonID), learner.ID, learner.Name)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *boardCache) Top(ctx context.Context, lessonID string, limit int) ([]model.BoardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(lessonID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.BoardEntry, len(results))
	ids := make([]string, len(results))
	for i, z := range results {
		id, _ := z.Member.(string)
		ids[i] = id
		entries[i] = model.BoardEntry{
			LearnerID: id,
			Score:     int(z.Score),
			Rank:      i + 1,
		}
	}
	if len(ids) == 0 {
		return entries, nil
	}

	names, err := c.client.HMGet(ctx, c.namesKey(lessonID), ids...).Result()
	if err != nil {
		return nil, err
	}
	for i, n := range names {
		if s, ok := n.(string); ok {
			entries[i].Name = s
		}
	}
	return entries, nil
}

func (c *boardCache) Rank(ctx context.Context, lessonID, learnerID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(lessonID), learnerID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}
