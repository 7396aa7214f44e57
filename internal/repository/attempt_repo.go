package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lessonquiz/internal/model"
)

// AttemptRepo stores graded quiz attempts
type AttemptRepo interface {
	Create(ctx context.Context, attempt *model.Attempt) error
	GetByLesson(ctx context.Context, lessonID string) ([]*model.Attempt, error)
	GetByLearner(ctx context.Context, learnerID, lessonID string) ([]*model.Attempt, error)
	HasPassed(ctx context.Context, learnerID, lessonID string) (bool, error)
}

type attemptRepo struct {
	collection *mongo.Collection
}

// NewAttemptRepo creates a new attempt repository
func NewAttemptRepo(db *mongo.Database) AttemptRepo {
	return &attemptRepo{
		collection: db.Collection("attempts"),
	}
}

func (r *attemptRepo) Create(ctx context.Context, attempt *model.Attempt) error {
	if attempt.SubmittedAt.IsZero() {
		attempt.SubmittedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, attempt)
	return errors.Wrap(err, "insert attempt")
}

func (r *attemptRepo) find(ctx context.Context, filter bson.M) ([]*model.Attempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find attempts")
	}
	defer cursor.Close(ctx)

	attempts := make([]*model.Attempt, 0)
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, errors.Wrap(err, "decode attempts")
	}
	return attempts, nil
}

func (r *attemptRepo) GetByLesson(ctx context.Context, lessonID string) ([]*model.Attempt, error) {
	return r.find(ctx, bson.M{"lessonId": lessonID})
}

func (r *attemptRepo) GetByLearner(ctx context.Context, learnerID, lessonID string) ([]*model.Attempt, error) {
	return r.find(ctx, bson.M{"learnerId": learnerID, "lessonId": lessonID})
}

func (r *attemptRepo) HasPassed(ctx context.Context, learnerID, lessonID string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx,
		bson.M{"learnerId": learnerID, "lessonId": lessonID, "passed": true},
		options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "count passed attempts")
	}
	return n > 0, nil
}
