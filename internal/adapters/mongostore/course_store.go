package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	corecourse "github.com/brian-watkins/groupwork-sub000/internal/core/course"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

type studentDoc struct {
	ID   string `bson:"id"`
	Name string `bson:"name"`
}

type courseDoc struct {
	ID        string       `bson:"_id"`
	TeacherID string       `bson:"teacher_id"`
	Name      string       `bson:"name"`
	Students  []studentDoc `bson:"students"`
	CreatedAt time.Time    `bson:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at"`
}

func (d courseDoc) record() *secondary.CourseRecord {
	students := make([]secondary.StudentRecord, len(d.Students))
	for i, s := range d.Students {
		students[i] = secondary.StudentRecord{ID: s.ID, Name: s.Name}
	}
	return &secondary.CourseRecord{
		ID:        d.ID,
		TeacherID: d.TeacherID,
		Name:      d.Name,
		Students:  students,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}

func studentDocs(records []secondary.StudentRecord) []studentDoc {
	docs := make([]studentDoc, len(records))
	for i, s := range records {
		docs[i] = studentDoc{ID: s.ID, Name: s.Name}
	}
	return docs
}

// CourseStore implements secondary.CourseRepository and
// secondary.TeacherAuthorizer with MongoDB. Rosters are embedded in the course document.
type CourseStore struct {
	db        *mongo.Database
	c         *mongo.Collection
	logWriter secondary.LogWriter
}

// NewCourseStore creates a new course store.
// logWriter is optional; pass nil to skip audit logging.
func NewCourseStore(db *mongo.Database, logWriter secondary.LogWriter) *CourseStore {
	return &CourseStore{db: db, c: db.Collection(coursesCollection), logWriter: logWriter}
}

// Create persists a new course and its roster.
func (s *CourseStore) Create(ctx context.Context, course *secondary.CourseRecord) error {
	if err := checkRoster(course.Students); err != nil {
		return err
	}
	now := time.Now().UTC()
	doc := courseDoc{
		ID:        course.ID,
		TeacherID: course.TeacherID,
		Name:      course.Name,
		Students:  studentDocs(course.Students),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogCreate(ctx, course.ID, "course", course.ID)
	}
	return nil
}

// Get retrieves a course owned by teacherID.
func (s *CourseStore) Get(ctx context.Context, teacherID, courseID string) (*secondary.CourseRecord, error) {
	var doc courseDoc
	err := s.c.FindOne(ctx, bson.M{"_id": courseID, "teacher_id": teacherID}).Decode(&doc)
	if isNoDocuments(err) {
		return nil, fmt.Errorf("course %s: %w", courseID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return doc.record(), nil
}

// GetAll retrieves every course owned by teacherID, ordered by ID.
func (s *CourseStore) GetAll(ctx context.Context, teacherID string) ([]*secondary.CourseRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"teacher_id": teacherID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer cur.Close(ctx)

	var docs []courseDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}

	courses := make([]*secondary.CourseRecord, len(docs))
	for i, d := range docs {
		courses[i] = d.record()
	}
	return courses, nil
}

// Update replaces the course name and roster.
func (s *CourseStore) Update(ctx context.Context, course *secondary.CourseRecord) error {
	if err := checkRoster(course.Students); err != nil {
		return err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before courseDoc
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": course.ID},
		bson.M{"$set": bson.M{
			"name":       course.Name,
			"students":   studentDocs(course.Students),
			"updated_at": time.Now().UTC(),
		}},
		opts,
	).Decode(&before)
	if isNoDocuments(err) {
		return fmt.Errorf("course %s: %w", course.ID, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	if s.logWriter != nil && before.Name != course.Name {
		_ = s.logWriter.LogUpdate(ctx, course.ID, "course", course.ID, "name", before.Name, course.Name)
	}
	return nil
}

// Delete removes a course and its group sets.
func (s *CourseStore) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("course %s: %w", id, secondary.ErrNotFound)
	}

	if _, err := s.db.Collection(groupSetsCollection).DeleteMany(ctx, bson.M{"course_id": id}); err != nil {
		return fmt.Errorf("failed to delete group sets of course %s: %w", id, err)
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogDelete(ctx, id, "course", id)
	}
	return nil
}

// GetNextID returns the next available course ID.
func (s *CourseStore) GetNextID(ctx context.Context) (string, error) {
	seq, err := nextSequence(ctx, s.db, "course")
	if err != nil {
		return "", err
	}
	return corecourse.GenerateCourseID(seq - 1), nil
}

// CanManageCourse reports whether teacherID owns courseID.
func (s *CourseStore) CanManageCourse(ctx context.Context, teacherID, courseID string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": courseID, "teacher_id": teacherID})
	if err != nil {
		return false, fmt.Errorf("failed to check course ownership: %w", err)
	}
	return n > 0, nil
}

func checkRoster(students []secondary.StudentRecord) error {
	seen := make(map[string]bool, len(students))
	for _, s := range students {
		if seen[s.ID] {
			return fmt.Errorf("student %s appears more than once on the roster", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

var (
	_ secondary.CourseRepository  = (*CourseStore)(nil)
	_ secondary.TeacherAuthorizer = (*CourseStore)(nil)
)
