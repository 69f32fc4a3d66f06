// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	corecourse "github.com/brian-watkins/groupwork-sub000/internal/core/course"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

// CourseRepository implements secondary.CourseRepository with SQLite.
type CourseRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewCourseRepository creates a new SQLite course repository.
// logWriter is optional; pass nil to skip audit logging.
func NewCourseRepository(db *sql.DB, logWriter secondary.LogWriter) *CourseRepository {
	return &CourseRepository{db: db, logWriter: logWriter}
}

// Create persists a new course and its roster.
func (r *CourseRepository) Create(ctx context.Context, course *secondary.CourseRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO courses (id, teacher_id, name) VALUES (?, ?, ?)",
		course.ID, course.TeacherID, course.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	if err := insertStudents(ctx, tx, course.ID, course.Students); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit course: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, course.ID, "course", course.ID)
	}
	return nil
}

// Get retrieves a course owned by teacherID, with its roster in order.
func (r *CourseRepository) Get(ctx context.Context, teacherID, courseID string) (*secondary.CourseRecord, error) {
	var createdAt time.Time

	record := &secondary.CourseRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, teacher_id, name, created_at FROM courses WHERE id = ? AND teacher_id = ?",
		courseID, teacherID,
	).Scan(&record.ID, &record.TeacherID, &record.Name, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course %s: %w", courseID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)

	record.Students, err = r.roster(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetAll retrieves every course owned by teacherID, ordered by ID.
func (r *CourseRepository) GetAll(ctx context.Context, teacherID string) ([]*secondary.CourseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, teacher_id, name, created_at FROM courses WHERE teacher_id = ? ORDER BY id ASC",
		teacherID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []*secondary.CourseRecord
	for rows.Next() {
		var createdAt time.Time

		record := &secondary.CourseRecord{}
		if err := rows.Scan(&record.ID, &record.TeacherID, &record.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		courses = append(courses, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	rows.Close()

	for _, c := range courses {
		if c.Students, err = r.roster(ctx, c.ID); err != nil {
			return nil, err
		}
	}
	return courses, nil
}

// Update replaces the course name and roster.
func (r *CourseRepository) Update(ctx context.Context, course *secondary.CourseRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE courses SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		course.Name, course.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("course %s: %w", course.ID, secondary.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM students WHERE course_id = ?", course.ID); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}
	if err := insertStudents(ctx, tx, course.ID, course.Students); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit course: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, course.ID, "course", course.ID, "name", "", course.Name)
	}
	return nil
}

// Delete removes a course; its roster and group sets cascade.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("course %s: %w", id, secondary.ErrNotFound)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogDelete(ctx, id, "course", id)
	}
	return nil
}

// GetNextID returns the next available course ID.
func (r *CourseRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 8) AS INTEGER)), 0) FROM courses",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next course ID: %w", err)
	}

	return corecourse.GenerateCourseID(maxID), nil
}

func (r *CourseRepository) roster(ctx context.Context, courseID string) ([]secondary.StudentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name FROM students WHERE course_id = ? ORDER BY position ASC",
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	defer rows.Close()

	students := []secondary.StudentRecord{}
	for rows.Next() {
		var s secondary.StudentRecord
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func insertStudents(ctx context.Context, tx *sql.Tx, courseID string, students []secondary.StudentRecord) error {
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO students (course_id, id, name, position) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare roster insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range students {
		if _, err := stmt.ExecContext(ctx, courseID, s.ID, s.Name, i); err != nil {
			return fmt.Errorf("failed to add student %s: %w", s.ID, err)
		}
	}
	return nil
}

// Ensure CourseRepository implements the interface.
var _ secondary.CourseRepository = (*CourseRepository)(nil)
