package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	coregroupset "github.com/brian-watkins/groupwork-sub000/internal/core/groupset"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

// createdAtLayout is fixed width so ORDER BY created_at sorts chronologically.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

// GroupSetRepository implements secondary.GroupSetRepository and
// secondary.GroupHistoryRepository with SQLite.
type GroupSetRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewGroupSetRepository creates a new SQLite group set repository.
// logWriter is optional; pass nil to skip audit logging.
func NewGroupSetRepository(db *sql.DB, logWriter secondary.LogWriter) *GroupSetRepository {
	return &GroupSetRepository{db: db, logWriter: logWriter}
}

// Create persists a new group set and its members.
func (r *GroupSetRepository) Create(ctx context.Context, gs *secondary.GroupSetRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO group_sets (id, course_id, name, created_at) VALUES (?, ?, ?, ?)",
		gs.ID, gs.CourseID, gs.Name, gs.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create group set: %w", err)
	}

	if err := insertMembers(ctx, tx, gs.ID, gs.Groups); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group set: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, gs.CourseID, "group_set", gs.ID)
	}
	return nil
}

// GetByID retrieves a group set by its ID.
func (r *GroupSetRepository) GetByID(ctx context.Context, id string) (*secondary.GroupSetRecord, error) {
	var createdAt string

	record := &secondary.GroupSetRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, course_id, name, created_at FROM group_sets WHERE id = ?",
		id,
	).Scan(&record.ID, &record.CourseID, &record.Name, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group set %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group set: %w", err)
	}
	if record.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
		return nil, err
	}

	groups, err := r.members(ctx, "WHERE m.group_set_id = ?", id)
	if err != nil {
		return nil, err
	}
	record.Groups = groups[id]
	return record, nil
}

// ListByCourse retrieves a course's group sets, newest first.
func (r *GroupSetRepository) ListByCourse(ctx context.Context, courseID string) ([]*secondary.GroupSetRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, course_id, name, created_at FROM group_sets WHERE course_id = ? ORDER BY created_at DESC, id DESC",
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group sets: %w", err)
	}
	defer rows.Close()

	sets := []*secondary.GroupSetRecord{}
	for rows.Next() {
		var createdAt string

		record := &secondary.GroupSetRecord{}
		if err := rows.Scan(&record.ID, &record.CourseID, &record.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan group set: %w", err)
		}
		if record.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
			return nil, err
		}
		sets = append(sets, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list group sets: %w", err)
	}
	rows.Close()

	groups, err := r.members(ctx, "JOIN group_sets gs ON gs.id = m.group_set_id WHERE gs.course_id = ?", courseID)
	if err != nil {
		return nil, err
	}
	for _, s := range sets {
		s.Groups = groups[s.ID]
	}
	return sets, nil
}

// GetHistory returns every group recorded for the course, across all of its group sets.
func (r *GroupSetRepository) GetHistory(ctx context.Context, courseID string) ([]secondary.GroupRecord, error) {
	sets, err := r.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var history []secondary.GroupRecord
	for _, s := range sets {
		history = append(history, s.Groups...)
	}
	return history, nil
}

// Save replaces the name and groups of an existing group set.
func (r *GroupSetRepository) Save(ctx context.Context, gs *secondary.GroupSetRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var oldName string
	err = tx.QueryRowContext(ctx, "SELECT name FROM group_sets WHERE id = ?", gs.ID).Scan(&oldName)
	if err == sql.ErrNoRows {
		return fmt.Errorf("group set %s: %w", gs.ID, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get group set: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE group_sets SET name = ? WHERE id = ?", gs.Name, gs.ID); err != nil {
		return fmt.Errorf("failed to update group set: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM group_members WHERE group_set_id = ?", gs.ID); err != nil {
		return fmt.Errorf("failed to clear group members: %w", err)
	}
	if err := insertMembers(ctx, tx, gs.ID, gs.Groups); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group set: %w", err)
	}

	if r.logWriter != nil {
		if oldName != gs.Name {
			_ = r.logWriter.LogUpdate(ctx, gs.CourseID, "group_set", gs.ID, "name", oldName, gs.Name)
		}
		_ = r.logWriter.LogUpdate(ctx, gs.CourseID, "group_set", gs.ID, "groups", "", fmt.Sprintf("%d groups", len(gs.Groups)))
	}
	return nil
}

// Delete removes a group set; its members cascade.
func (r *GroupSetRepository) Delete(ctx context.Context, id string) error {
	var courseID string
	err := r.db.QueryRowContext(ctx, "SELECT course_id FROM group_sets WHERE id = ?", id).Scan(&courseID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("group set %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get group set: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM group_sets WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete group set: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogDelete(ctx, courseID, "group_set", id)
	}
	return nil
}

// GetNextID returns the next available group set ID.
func (r *GroupSetRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("GS-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM group_sets", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next group set ID: %w", err)
	}

	return coregroupset.GenerateGroupSetID(maxID), nil
}

// members loads group members keyed by group set ID, with groups and
// members in their stored order. where filters the group_members alias m.
func (r *GroupSetRepository) members(ctx context.Context, where string, arg any) (map[string][]secondary.GroupRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT m.group_set_id, m.group_index, m.student_id, m.student_name FROM group_members m "+
			where+" ORDER BY m.group_set_id, m.group_index, m.position",
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	out := map[string][]secondary.GroupRecord{}
	for rows.Next() {
		var (
			setID string
			index int
			s     secondary.StudentRecord
		)
		if err := rows.Scan(&setID, &index, &s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		groups := out[setID]
		for len(groups) <= index {
			groups = append(groups, secondary.GroupRecord{})
		}
		groups[index].Members = append(groups[index].Members, s)
		out[setID] = groups
	}
	return out, rows.Err()
}

func insertMembers(ctx context.Context, tx *sql.Tx, groupSetID string, groups []secondary.GroupRecord) error {
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO group_members (group_set_id, group_index, position, student_id, student_name) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare member insert: %w", err)
	}
	defer stmt.Close()

	for gi, g := range groups {
		for pos, m := range g.Members {
			if _, err := stmt.ExecContext(ctx, groupSetID, gi, pos, m.ID, m.Name); err != nil {
				return fmt.Errorf("failed to add student %s to group %d: %w", m.ID, gi+1, err)
			}
		}
	}
	return nil
}

func parseCreatedAt(s string) (time.Time, error) {
	t, err := time.Parse(createdAtLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse created_at %q: %w", s, err)
	}
	return t, nil
}

// Ensure GroupSetRepository implements the interfaces.
var (
	_ secondary.GroupSetRepository     = (*GroupSetRepository)(nil)
	_ secondary.GroupHistoryRepository = (*GroupSetRepository)(nil)
)
