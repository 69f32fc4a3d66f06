// Package course contains the pure business logic for course and roster operations.
// Guards are pure functions that evaluate preconditions without side effects.
package course

import (
	"fmt"
	"strings"

	"github.com/brian-watkins/groupwork-sub000/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RosterContext provides context for course create and update guards.
type RosterContext struct {
	Name     string
	Students []models.Student
}

// CanSaveCourse evaluates whether a course can be created or updated.
// Rules:
// - Name must not be empty
// - Every student must have a name
// - Student ids must be unique within the roster
func CanSaveCourse(ctx RosterContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "course name cannot be empty",
		}
	}

	seen := make(map[models.StudentID]struct{}, len(ctx.Students))
	for i, s := range ctx.Students {
		if strings.TrimSpace(s.Name) == "" {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("student %d has no name", i+1),
			}
		}
		if s.ID == "" {
			continue
		}
		if _, dup := seen[s.ID]; dup {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("student %s appears more than once on the roster", s.ID),
			}
		}
		seen[s.ID] = struct{}{}
	}

	return GuardResult{Allowed: true}
}

// GenerateCourseID generates a course ID from the current max number.
// The format is COURSE-XXX where XXX is a zero-padded 3-digit number.
func GenerateCourseID(currentMax int) string {
	return fmt.Sprintf("COURSE-%03d", currentMax+1)
}
