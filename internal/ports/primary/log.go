package primary

import (
	"context"

	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
)

// LogService defines the primary port for course activity log operations.
type LogService interface {
	// ListLogs retrieves a course's activity, newest first.
	ListLogs(ctx context.Context, teacher models.TeacherID, filters LogFilters) (result.Result[[]*LogEntry], error)

	// PruneLogs deletes log entries older than the specified number of days.
	PruneLogs(ctx context.Context, olderThanDays int) (int, error)
}

// LogEntry represents a course activity log entry at the port boundary.
type LogEntry struct {
	ID         string
	CourseID   string
	Timestamp  string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // For updates only
	OldValue   string
	NewValue   string
}

// LogFilters contains filter options for querying logs.
type LogFilters struct {
	CourseID   string `json:"course_id" validate:"required"`
	EntityType string
	EntityID   string
	Action     string
	Limit      int
}
