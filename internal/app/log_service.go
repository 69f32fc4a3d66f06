package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

// LogServiceImpl implements the LogService interface.
type LogServiceImpl struct {
	logRepo    secondary.ActivityLogRepository
	authorizer secondary.TeacherAuthorizer
	logger     *zap.Logger
}

// NewLogService creates a new LogService with injected dependencies.
func NewLogService(logRepo secondary.ActivityLogRepository, authorizer secondary.TeacherAuthorizer, logger *zap.Logger) *LogServiceImpl {
	return &LogServiceImpl{
		logRepo:    logRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// ListLogs retrieves a course's activity, newest first.
func (s *LogServiceImpl) ListLogs(ctx context.Context, teacher models.TeacherID, filters primary.LogFilters) (result.Result[[]*primary.LogEntry], error) {
	if f, err := validateRequest(filters); err != nil || f != nil {
		return result.Fail[[]*primary.LogEntry](f), err
	}

	if f, err := authorize(ctx, s.authorizer, s.logger, teacher, models.CourseID(filters.CourseID)); err != nil || f != nil {
		return result.Fail[[]*primary.LogEntry](f), err
	}

	records, err := s.logRepo.List(ctx, secondary.ActivityFilters{
		CourseID:   filters.CourseID,
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		Action:     filters.Action,
		Limit:      filters.Limit,
	})
	if err != nil {
		return result.Result[[]*primary.LogEntry]{}, fmt.Errorf("failed to list logs: %w", err)
	}

	entries := make([]*primary.LogEntry, len(records))
	for i, r := range records {
		entries[i] = s.recordToLogEntry(r)
	}
	return result.Ok(entries), nil
}

// PruneLogs deletes log entries older than the specified number of days.
func (s *LogServiceImpl) PruneLogs(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays < 1 {
		return 0, fmt.Errorf("days must be at least 1, got %d", olderThanDays)
	}
	return s.logRepo.PruneOlderThan(ctx, olderThanDays)
}

// Helper methods

func (s *LogServiceImpl) recordToLogEntry(r *secondary.ActivityRecord) *primary.LogEntry {
	return &primary.LogEntry{
		ID:         r.ID,
		CourseID:   r.CourseID,
		Timestamp:  r.CreatedAt.Local().Format(time.DateTime),
		ActorID:    r.ActorID,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Action:     r.Action,
		FieldName:  r.FieldName,
		OldValue:   r.OldValue,
		NewValue:   r.NewValue,
	}
}

// Ensure LogServiceImpl implements the interface
var _ primary.LogService = (*LogServiceImpl)(nil)
