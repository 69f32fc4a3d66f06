package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	coregroupset "github.com/brian-watkins/groupwork-sub000/internal/core/groupset"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

type groupDoc struct {
	Members []studentDoc `bson:"members"`
}

type groupSetDoc struct {
	ID        string     `bson:"_id"`
	CourseID  string     `bson:"course_id"`
	Name      string     `bson:"name"`
	Groups    []groupDoc `bson:"groups"`
	CreatedAt time.Time  `bson:"created_at"`
}

func (d groupSetDoc) record() *secondary.GroupSetRecord {
	return &secondary.GroupSetRecord{
		ID:        d.ID,
		CourseID:  d.CourseID,
		Name:      d.Name,
		Groups:    groupRecords(d.Groups),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func groupRecords(docs []groupDoc) []secondary.GroupRecord {
	out := make([]secondary.GroupRecord, len(docs))
	for i, g := range docs {
		members := make([]secondary.StudentRecord, len(g.Members))
		for j, m := range g.Members {
			members[j] = secondary.StudentRecord{ID: m.ID, Name: m.Name}
		}
		out[i] = secondary.GroupRecord{Members: members}
	}
	return out
}

func groupDocs(records []secondary.GroupRecord) []groupDoc {
	out := make([]groupDoc, len(records))
	for i, g := range records {
		out[i] = groupDoc{Members: studentDocs(g.Members)}
	}
	return out
}

// GroupSetStore implements secondary.GroupSetRepository and
// secondary.GroupHistoryRepository with MongoDB. Groups are embedded in the set document.
type GroupSetStore struct {
	db        *mongo.Database
	c         *mongo.Collection
	logWriter secondary.LogWriter
}

// NewGroupSetStore creates a new group set store.
// logWriter is optional; pass nil to skip audit logging.
func NewGroupSetStore(db *mongo.Database, logWriter secondary.LogWriter) *GroupSetStore {
	return &GroupSetStore{db: db, c: db.Collection(groupSetsCollection), logWriter: logWriter}
}

// Create persists a new group set.
func (s *GroupSetStore) Create(ctx context.Context, gs *secondary.GroupSetRecord) error {
	doc := groupSetDoc{
		ID:        gs.ID,
		CourseID:  gs.CourseID,
		Name:      gs.Name,
		Groups:    groupDocs(gs.Groups),
		CreatedAt: gs.CreatedAt.UTC(),
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create group set: %w", err)
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogCreate(ctx, gs.CourseID, "group_set", gs.ID)
	}
	return nil
}

// GetByID retrieves a group set by its ID.
func (s *GroupSetStore) GetByID(ctx context.Context, id string) (*secondary.GroupSetRecord, error) {
	var doc groupSetDoc
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if isNoDocuments(err) {
		return nil, fmt.Errorf("group set %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group set: %w", err)
	}
	return doc.record(), nil
}

// ListByCourse retrieves a course's group sets, newest first.
func (s *GroupSetStore) ListByCourse(ctx context.Context, courseID string) ([]*secondary.GroupSetRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list group sets: %w", err)
	}
	defer cur.Close(ctx)

	var docs []groupSetDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode group sets: %w", err)
	}

	sets := make([]*secondary.GroupSetRecord, len(docs))
	for i, d := range docs {
		sets[i] = d.record()
	}
	return sets, nil
}

// GetHistory returns every group recorded for the course, across all of its group sets.
func (s *GroupSetStore) GetHistory(ctx context.Context, courseID string) ([]secondary.GroupRecord, error) {
	opts := options.Find().SetProjection(bson.M{"groups": 1})
	cur, err := s.c.Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get group history: %w", err)
	}
	defer cur.Close(ctx)

	var history []secondary.GroupRecord
	for cur.Next(ctx) {
		var doc groupSetDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode group set: %w", err)
		}
		history = append(history, groupRecords(doc.Groups)...)
	}
	return history, cur.Err()
}

// Save replaces the name and groups of an existing group set.
func (s *GroupSetStore) Save(ctx context.Context, gs *secondary.GroupSetRecord) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before groupSetDoc
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": gs.ID},
		bson.M{"$set": bson.M{"name": gs.Name, "groups": groupDocs(gs.Groups)}},
		opts,
	).Decode(&before)
	if isNoDocuments(err) {
		return fmt.Errorf("group set %s: %w", gs.ID, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to save group set: %w", err)
	}

	if s.logWriter != nil {
		if before.Name != gs.Name {
			_ = s.logWriter.LogUpdate(ctx, before.CourseID, "group_set", gs.ID, "name", before.Name, gs.Name)
		}
		_ = s.logWriter.LogUpdate(ctx, before.CourseID, "group_set", gs.ID, "groups", "", fmt.Sprintf("%d groups", len(gs.Groups)))
	}
	return nil
}

// Delete removes a group set.
func (s *GroupSetStore) Delete(ctx context.Context, id string) error {
	var doc groupSetDoc
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if isNoDocuments(err) {
		return fmt.Errorf("group set %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete group set: %w", err)
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogDelete(ctx, doc.CourseID, "group_set", id)
	}
	return nil
}

// GetNextID returns the next available group set ID.
func (s *GroupSetStore) GetNextID(ctx context.Context) (string, error) {
	seq, err := nextSequence(ctx, s.db, "group_set")
	if err != nil {
		return "", err
	}
	return coregroupset.GenerateGroupSetID(seq - 1), nil
}

var (
	_ secondary.GroupSetRepository     = (*GroupSetStore)(nil)
	_ secondary.GroupHistoryRepository = (*GroupSetStore)(nil)
)
