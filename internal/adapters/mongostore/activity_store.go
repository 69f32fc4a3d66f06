package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brian-watkins/groupwork-sub000/internal/ctxutil"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

type activityDoc struct {
	ID         string    `bson:"_id"`
	CourseID   string    `bson:"course_id"`
	ActorID    string    `bson:"actor_id,omitempty"`
	EntityType string    `bson:"entity_type"`
	EntityID   string    `bson:"entity_id"`
	Action     string    `bson:"action"`
	FieldName  string    `bson:"field_name,omitempty"`
	OldValue   string    `bson:"old_value,omitempty"`
	NewValue   string    `bson:"new_value,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
}

// ActivityStore implements secondary.ActivityLogRepository and
// secondary.LogWriter with MongoDB.
type ActivityStore struct {
	db *mongo.Database
	c  *mongo.Collection
}

// NewActivityStore creates a new activity store.
func NewActivityStore(db *mongo.Database) *ActivityStore {
	return &ActivityStore{db: db, c: db.Collection(activityCollection)}
}

// Create persists a new activity log entry.
func (s *ActivityStore) Create(ctx context.Context, entry *secondary.ActivityRecord) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	doc := activityDoc{
		ID:         entry.ID,
		CourseID:   entry.CourseID,
		ActorID:    entry.ActorID,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		FieldName:  entry.FieldName,
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
		CreatedAt:  createdAt.UTC(),
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create activity log: %w", err)
	}
	return nil
}

// List retrieves log entries matching the given filters, newest first.
func (s *ActivityStore) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	query := bson.M{}
	if filters.CourseID != "" {
		query["course_id"] = filters.CourseID
	}
	if filters.EntityType != "" {
		query["entity_type"] = filters.EntityType
	}
	if filters.EntityID != "" {
		query["entity_id"] = filters.EntityID
	}
	if filters.ActorID != "" {
		query["actor_id"] = filters.ActorID
	}
	if filters.Action != "" {
		query["action"] = filters.Action
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if filters.Limit > 0 {
		opts.SetLimit(int64(filters.Limit))
	}

	cur, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity log: %w", err)
	}
	defer cur.Close(ctx)

	var docs []activityDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode activity log: %w", err)
	}

	entries := make([]*secondary.ActivityRecord, len(docs))
	for i, d := range docs {
		entries[i] = &secondary.ActivityRecord{
			ID:         d.ID,
			CourseID:   d.CourseID,
			ActorID:    d.ActorID,
			EntityType: d.EntityType,
			EntityID:   d.EntityID,
			Action:     d.Action,
			FieldName:  d.FieldName,
			OldValue:   d.OldValue,
			NewValue:   d.NewValue,
			CreatedAt:  d.CreatedAt.UTC(),
		}
	}
	return entries, nil
}

// GetNextID returns the next available log ID.
func (s *ActivityStore) GetNextID(ctx context.Context) (string, error) {
	seq, err := nextSequence(ctx, s.db, "activity")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LOG-%03d", seq), nil
}

// PruneOlderThan deletes entries older than the given number of days.
func (s *ActivityStore) PruneOlderThan(ctx context.Context, days int) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.c.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity log: %w", err)
	}
	return int(res.DeletedCount), nil
}

// LogCreate logs a create operation for an entity.
func (s *ActivityStore) LogCreate(ctx context.Context, courseID, entityType, entityID string) error {
	return s.write(ctx, courseID, entityType, entityID, "create", "", "", "")
}

// LogUpdate logs an update operation for an entity field.
func (s *ActivityStore) LogUpdate(ctx context.Context, courseID, entityType, entityID, fieldName, oldValue, newValue string) error {
	return s.write(ctx, courseID, entityType, entityID, "update", fieldName, oldValue, newValue)
}

// LogDelete logs a delete operation for an entity.
func (s *ActivityStore) LogDelete(ctx context.Context, courseID, entityType, entityID string) error {
	return s.write(ctx, courseID, entityType, entityID, "delete", "", "", "")
}

func (s *ActivityStore) write(ctx context.Context, courseID, entityType, entityID, action, fieldName, oldValue, newValue string) error {
	actorID := ctxutil.ActorFromContext(ctx)
	if actorID == "" || courseID == "" {
		return nil
	}
	id, err := s.GetNextID(ctx)
	if err != nil {
		return err
	}
	return s.Create(ctx, &secondary.ActivityRecord{
		ID:         id,
		CourseID:   courseID,
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		FieldName:  fieldName,
		OldValue:   oldValue,
		NewValue:   newValue,
	})
}

var (
	_ secondary.ActivityLogRepository = (*ActivityStore)(nil)
	_ secondary.LogWriter             = (*ActivityStore)(nil)
)
