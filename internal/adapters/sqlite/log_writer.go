package sqlite

import (
	"context"

	"github.com/brian-watkins/groupwork-sub000/internal/ctxutil"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using an ActivityLogRepository.
type LogWriterAdapter struct {
	logRepo secondary.ActivityLogRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.ActivityLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo}
}

// LogCreate logs a create operation for an entity.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, courseID, entityType, entityID string) error {
	return w.writeLog(ctx, courseID, entityType, entityID, "create", "", "", "")
}

// LogUpdate logs an update operation for an entity field.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, courseID, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.writeLog(ctx, courseID, entityType, entityID, "update", fieldName, oldValue, newValue)
}

// LogDelete logs a delete operation for an entity.
func (w *LogWriterAdapter) LogDelete(ctx context.Context, courseID, entityType, entityID string) error {
	return w.writeLog(ctx, courseID, entityType, entityID, "delete", "", "", "")
}

func (w *LogWriterAdapter) writeLog(ctx context.Context, courseID, entityType, entityID, action, fieldName, oldValue, newValue string) error {
	actorID := ctxutil.ActorFromContext(ctx)
	if actorID == "" || courseID == "" {
		// No acting teacher - skip logging
		return nil
	}

	id, err := w.logRepo.GetNextID(ctx)
	if err != nil {
		return err
	}

	return w.logRepo.Create(ctx, &secondary.ActivityRecord{
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

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
