package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type index struct {
	collection string
	keys       bson.D
	unique     bool
}

var indexes = []index{
	{"questions", bson.D{{Key: "lessonId", Value: 1}, {Key: "position", Value: 1}}, false},
	{"attempts", bson.D{{Key: "lessonId", Value: 1}, {Key: "submittedAt", Value: -1}}, false},
	{"attempts", bson.D{{Key: "learnerId", Value: 1}, {Key: "lessonId", Value: 1}, {Key: "submittedAt", Value: -1}}, false},
	{"lesson_progress", bson.D{{Key: "learnerId", Value: 1}, {Key: "lessonId", Value: 1}}, true},
}

// EnsureIndexes creates the indexes the repositories query by. The unique
// progress index is what keeps concurrent completions to one document.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idx := range indexes {
		opts := options.Index().SetUnique(idx.unique)
		_, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: idx.keys, Options: opts})
		if err != nil {
			return errors.Wrapf(err, "create index on %s", idx.collection)
		}
	}
	return nil
}
