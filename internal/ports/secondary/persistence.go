// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned (possibly wrapped) by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")

// CourseRepository defines the secondary port for course and roster persistence.
// Reads are scoped to the owning teacher: a course owned by someone else is not found.
type CourseRepository interface {
	// Create persists a new course and its roster.
	Create(ctx context.Context, course *CourseRecord) error

	// Get retrieves a course owned by teacherID, with its roster in order.
	Get(ctx context.Context, teacherID, courseID string) (*CourseRecord, error)

	// GetAll retrieves every course owned by teacherID, ordered by ID.
	GetAll(ctx context.Context, teacherID string) ([]*CourseRecord, error)

	// Update replaces the course name and roster.
	Update(ctx context.Context, course *CourseRecord) error

	// Delete removes a course, its roster and its group sets.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available course ID.
	GetNextID(ctx context.Context) (string, error)
}

// CourseRecord represents a course as stored in persistence.
type CourseRecord struct {
	ID        string
	TeacherID string
	Name      string
	Students  []StudentRecord // roster order
	CreatedAt string
}

// StudentRecord represents a roster entry as stored in persistence.
type StudentRecord struct {
	ID   string
	Name string
}

// GroupHistoryRepository defines the secondary port for collaboration history reads.
type GroupHistoryRepository interface {
	// GetHistory returns every group ever recorded for the course, flattened across group sets.
	GetHistory(ctx context.Context, courseID string) ([]GroupRecord, error)
}

// GroupSetRepository defines the secondary port for group set persistence.
type GroupSetRepository interface {
	// Create persists a new group set.
	Create(ctx context.Context, groupSet *GroupSetRecord) error

	// GetByID retrieves a group set by its ID.
	GetByID(ctx context.Context, id string) (*GroupSetRecord, error)

	// ListByCourse retrieves a course's group sets, newest first.
	ListByCourse(ctx context.Context, courseID string) ([]*GroupSetRecord, error)

	// Save replaces the name and groups of an existing group set.
	Save(ctx context.Context, groupSet *GroupSetRecord) error

	// Delete removes a group set from persistence.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available group set ID.
	GetNextID(ctx context.Context) (string, error)
}

// GroupSetRecord represents a group set as stored in persistence.
type GroupSetRecord struct {
	ID        string
	CourseID  string
	Name      string
	Groups    []GroupRecord
	CreatedAt time.Time // UTC, millisecond precision
}

// GroupRecord represents one group of a group set as stored in persistence.
type GroupRecord struct {
	Members []StudentRecord
}

// TeacherAuthorizer defines the secondary port for course ownership checks.
type TeacherAuthorizer interface {
	// CanManageCourse reports whether teacherID owns courseID.
	// An unknown course yields false, not an error.
	CanManageCourse(ctx context.Context, teacherID, courseID string) (bool, error)
}

// ActivityLogRepository defines the secondary port for activity log (audit trail) persistence.
// Entries are immutable - no Update operations, but old entries can be pruned.
type ActivityLogRepository interface {
	// Create persists a new activity log entry.
	Create(ctx context.Context, entry *ActivityRecord) error

	// List retrieves log entries matching the given filters, newest first.
	List(ctx context.Context, filters ActivityFilters) ([]*ActivityRecord, error)

	// GetNextID returns the next available log ID.
	GetNextID(ctx context.Context) (string, error)

	// PruneOlderThan deletes entries older than the given number of days.
	// Returns the number of deleted entries.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// ActivityRecord represents an activity log entry as stored in persistence.
type ActivityRecord struct {
	ID         string
	CourseID   string
	ActorID    string // Empty string means null
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // Empty string means null - for updates only
	OldValue   string // Empty string means null
	NewValue   string // Empty string means null
	CreatedAt  time.Time
}

// ActivityFilters contains filter options for querying the activity log.
type ActivityFilters struct {
	CourseID   string
	EntityType string
	EntityID   string
	ActorID    string
	Action     string
	Limit      int
}
