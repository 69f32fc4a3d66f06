// Package mongostore contains MongoDB implementations of repository interfaces.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	coursesCollection   = "courses"
	groupSetsCollection = "group_sets"
	activityCollection  = "activity_log"
	countersCollection  = "counters"
)

// Connect opens a client for uri and returns the named database.
// The caller disconnects the returned client.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, client.Database(database), nil
}

// EnsureIndexes creates the indexes every repository in this package relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(coursesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "teacher_id", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_courses_teacher"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create course indexes: %w", err)
	}

	_, err = db.Collection(groupSetsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "course_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_group_sets_course_created"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create group set indexes: %w", err)
	}

	_, err = db.Collection(activityCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "course_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_activity_course"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create activity indexes: %w", err)
	}
	return nil
}

// counterDoc tracks the last issued sequence number for an ID prefix.
type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int    `bson:"seq"`
}

// nextSequence atomically increments and returns the counter named name.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to advance %s counter: %w", name, err)
	}
	return doc.Seq, nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
