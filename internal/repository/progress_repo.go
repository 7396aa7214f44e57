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

// ProgressRepo stores lesson completions
type ProgressRepo interface {
	// Complete is idempotent: the first completion time is kept.
	Complete(ctx context.Context, learnerID, lessonID string) (*model.LessonProgress, error)
	GetByLearner(ctx context.Context, learnerID string) ([]*model.LessonProgress, error)
}

type progressRepo struct {
	collection *mongo.Collection
}

// NewProgressRepo creates a new progress repository
func NewProgressRepo(db *mongo.Database) ProgressRepo {
	return &progressRepo{
		collection: db.Collection("lesson_progress"),
	}
}

func (r *progressRepo) Complete(ctx context.Context, learnerID, lessonID string) (*model.LessonProgress, error) {
	filter := bson.M{"learnerId": learnerID, "lessonId": lessonID}
	update := bson.M{"$setOnInsert": bson.M{
		"learnerId":   learnerID,
		"lessonId":    lessonID,
		"completedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var progress model.LessonProgress
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&progress); err != nil {
		return nil, errors.Wrapf(err, "complete lesson %s", lessonID)
	}
	return &progress, nil
}

func (r *progressRepo) GetByLearner(ctx context.Context, learnerID string) ([]*model.LessonProgress, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"learnerId": learnerID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find progress")
	}
	defer cursor.Close(ctx)

	progress := make([]*model.LessonProgress, 0)
	if err := cursor.All(ctx, &progress); err != nil {
		return nil, errors.Wrap(err, "decode progress")
	}
	return progress, nil
}
