package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

// TeacherAuthorizer implements secondary.TeacherAuthorizer by checking course ownership.
type TeacherAuthorizer struct {
	db *sql.DB
}

// NewTeacherAuthorizer creates a new SQLite teacher authorizer.
func NewTeacherAuthorizer(db *sql.DB) *TeacherAuthorizer {
	return &TeacherAuthorizer{db: db}
}

// CanManageCourse reports whether teacherID owns courseID.
func (a *TeacherAuthorizer) CanManageCourse(ctx context.Context, teacherID, courseID string) (bool, error) {
	var count int
	err := a.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM courses WHERE id = ? AND teacher_id = ?",
		courseID, teacherID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check course ownership: %w", err)
	}
	return count > 0, nil
}

var _ secondary.TeacherAuthorizer = (*TeacherAuthorizer)(nil)
