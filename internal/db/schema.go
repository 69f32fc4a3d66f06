package db

import "database/sql"

// SchemaSQL is the complete schema for the SQLite backend.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository tests
// load it through GetSchemaSQL() instead of declaring their own tables, so a
// query against a column that does not exist here fails at test time.
//
// Every statement is idempotent; InitSchema runs it on each open.
const SchemaSQL = `
-- Courses (one teacher owns each course)
CREATE TABLE IF NOT EXISTS courses (
	id TEXT PRIMARY KEY,
	teacher_id TEXT NOT NULL,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_courses_teacher ON courses(teacher_id);

-- Students (course roster, ordered by position)
CREATE TABLE IF NOT EXISTS students (
	course_id TEXT NOT NULL,
	id TEXT NOT NULL,
	name TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (course_id, id),
	FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
);

-- Group sets (recorded partitions of a roster)
-- created_at is fixed-width UTC text so lexical order is chronological.
CREATE TABLE IF NOT EXISTS group_sets (
	id TEXT PRIMARY KEY,
	course_id TEXT NOT NULL,
	name TEXT NOT NULL,
	created_at TEXT NOT NULL,
	FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_group_sets_course_created ON group_sets(course_id, created_at DESC);

-- Group members (student names are copied so history survives roster edits)
CREATE TABLE IF NOT EXISTS group_members (
	group_set_id TEXT NOT NULL,
	group_index INTEGER NOT NULL,
	position INTEGER NOT NULL,
	student_id TEXT NOT NULL,
	student_name TEXT NOT NULL,
	PRIMARY KEY (group_set_id, student_id),
	FOREIGN KEY (group_set_id) REFERENCES group_sets(id) ON DELETE CASCADE
);

-- Activity log (audit trail; outlives the entities it mentions)
CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	course_id TEXT NOT NULL,
	actor_id TEXT,
	entity_type TEXT NOT NULL CHECK(entity_type IN ('course', 'group_set')),
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_log_course ON activity_log(course_id, created_at DESC);
`

// InitSchema creates any missing tables and indexes.
func InitSchema(conn *sql.DB) error {
	_, err := conn.Exec(SchemaSQL)
	return err
}

// GetSchemaSQL returns the authoritative schema for tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
