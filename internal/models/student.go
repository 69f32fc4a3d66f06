// Package models holds the domain entities shared by the core, the ports and the adapters.
// They are plain values with no persistence behaviour.
package models

// StudentID is an opaque student identifier.
type StudentID string

// Student is identified by ID; two students with the same ID are the same student
// regardless of name.
type Student struct {
	ID   StudentID `json:"id"`
	Name string    `json:"name"`
}

// TeacherID is an opaque teacher identifier.
type TeacherID string

// Teacher is the authorization principal for every command.
type Teacher struct {
	ID TeacherID `json:"id"`
}

// CourseID is an opaque course identifier.
type CourseID string

// Course is a named roster owned by exactly one teacher. Ownership lives in the
// course store; a Course value carries it only when the store provides it.
type Course struct {
	ID        CourseID  `json:"id"`
	TeacherID TeacherID `json:"teacher_id,omitempty"`
	Name      string    `json:"name"`
	Students  []Student `json:"students"`
}

// StudentCount returns the roster size.
func (c Course) StudentCount() int {
	return len(c.Students)
}

// HasStudent reports whether the roster contains the student id.
func (c Course) HasStudent(id StudentID) bool {
	for _, s := range c.Students {
		if s.ID == id {
			return true
		}
	}
	return false
}
