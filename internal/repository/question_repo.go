package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lessonquiz/internal/model"
)

// QuestionRepo stores lesson quiz questions
type QuestionRepo interface {
	Create(ctx context.Context, question *model.LessonQuestion) error
	GetByID(ctx context.Context, id string) (*model.LessonQuestion, error)
	GetByLesson(ctx context.Context, lessonID string) ([]*model.LessonQuestion, error)
	Update(ctx context.Context, question *model.LessonQuestion) error
	Delete(ctx context.Context, id string) error

	// Reorder sets position i on the i-th id of the lesson.
	Reorder(ctx context.Context, lessonID string, ids []string) error
	NextPosition(ctx context.Context, lessonID string) (int, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) Create(ctx context.Context, question *model.LessonQuestion) error {
	// Generate an id if not provided
	if question.ID == "" {
		question.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, question); err != nil {
		return errors.Wrap(err, "insert question")
	}
	return nil
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.LessonQuestion, error) {
	var question model.LessonQuestion
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil // Question not found
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find question %s", id)
	}
	return &question, nil
}

func (r *questionRepo) GetByLesson(ctx context.Context, lessonID string) ([]*model.LessonQuestion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"lessonId": lessonID}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "find questions of lesson %s", lessonID)
	}
	defer cursor.Close(ctx)

	questions := make([]*model.LessonQuestion, 0)
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, errors.Wrap(err, "decode questions")
	}
	return questions, nil
}

func (r *questionRepo) Update(ctx context.Context, question *model.LessonQuestion) error {
	question.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": question.ID}, question)
	return errors.Wrapf(err, "replace question %s", question.ID)
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrapf(err, "delete question %s", id)
}

func (r *questionRepo) Reorder(ctx context.Context, lessonID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(ids))
	for i, id := range ids {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id, "lessonId": lessonID}).
			SetUpdate(bson.M{"$set": bson.M{"position": i, "updatedAt": now}}))
	}
	_, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return errors.Wrapf(err, "reorder lesson %s", lessonID)
}

func (r *questionRepo) NextPosition(ctx context.Context, lessonID string) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}})
	var last model.LessonQuestion
	err := r.collection.FindOne(ctx, bson.M{"lessonId": lessonID}, opts).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "last position of lesson %s", lessonID)
	}
	return last.Position + 1, nil
}
