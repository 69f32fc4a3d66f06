// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Use setupTestDB() and the seed* helpers instead of
// declaring tables in test files.
package sqlite_test

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/brian-watkins/groupwork-sub000/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedCourse inserts a course owned by teacherID with n students (s01, s02, ...).
func seedCourse(t *testing.T, db *sql.DB, id, teacherID string, n int) string {
	t.Helper()
	if id == "" {
		id = "COURSE-001"
	}
	if teacherID == "" {
		teacherID = "teacher-1"
	}
	_, err := db.Exec("INSERT INTO courses (id, teacher_id, name) VALUES (?, ?, ?)", id, teacherID, "Test Course")
	if err != nil {
		t.Fatalf("failed to seed course: %v", err)
	}
	for i := 1; i <= n; i++ {
		_, err := db.Exec("INSERT INTO students (course_id, id, name, position) VALUES (?, ?, ?, ?)",
			id, fmt.Sprintf("s%02d", i), fmt.Sprintf("Student %d", i), i-1)
		if err != nil {
			t.Fatalf("failed to seed student: %v", err)
		}
	}
	return id
}

// seedGroupSet inserts a group set with the given member IDs per group.
func seedGroupSet(t *testing.T, db *sql.DB, id, courseID, createdAt string, groups ...[]string) string {
	t.Helper()
	_, err := db.Exec("INSERT INTO group_sets (id, course_id, name, created_at) VALUES (?, ?, ?, ?)",
		id, courseID, "Set "+id, createdAt)
	if err != nil {
		t.Fatalf("failed to seed group set: %v", err)
	}
	for gi, members := range groups {
		for pos, sid := range members {
			_, err := db.Exec("INSERT INTO group_members (group_set_id, group_index, position, student_id, student_name) VALUES (?, ?, ?, ?, ?)",
				id, gi, pos, sid, "Student "+sid)
			if err != nil {
				t.Fatalf("failed to seed group member: %v", err)
			}
		}
	}
	return id
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}
