// Package groupset contains the pure business logic for group set operations.
// Guards are pure functions that evaluate preconditions without side effects.
package groupset

import (
	"fmt"
	"strings"

	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Kind    result.Kind
	Reason  string
}

// Failure converts the guard result to a business failure if not allowed.
func (r GuardResult) Failure() *result.Failure {
	if r.Allowed {
		return nil
	}
	return &result.Failure{Kind: r.Kind, Message: r.Reason}
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return r.Failure()
}

func allowed() GuardResult {
	return GuardResult{Allowed: true}
}

func denied(kind result.Kind, format string, args ...any) GuardResult {
	return GuardResult{
		Allowed: false,
		Kind:    kind,
		Reason:  fmt.Sprintf(format, args...),
	}
}

// ManageCourseContext provides context for the course ownership guard.
type ManageCourseContext struct {
	TeacherID string
	CourseID  string
	CanManage bool // answer from the teacher authorizer
}

// CanManageCourse evaluates whether a teacher may read or mutate a course's group sets.
// Rules:
// - Teacher id must not be empty
// - The authorizer must have confirmed ownership
func CanManageCourse(ctx ManageCourseContext) GuardResult {
	if strings.TrimSpace(ctx.TeacherID) == "" || !ctx.CanManage {
		return GuardResult{
			Allowed: false,
			Kind:    result.KindUnauthorized,
			Reason:  result.Unauthorized(ctx.TeacherID, ctx.CourseID).Message,
		}
	}
	return allowed()
}

// PartitionContext provides context for the partition guard.
type PartitionContext struct {
	Roster []models.Student
	Groups []models.Group
}

// ValidatePartition evaluates whether groups partition a subset of the roster.
// Rules:
// - No student appears in more than one group
// - Every member is on the course roster
func ValidatePartition(ctx PartitionContext) GuardResult {
	onRoster := make(map[models.StudentID]struct{}, len(ctx.Roster))
	for _, s := range ctx.Roster {
		onRoster[s.ID] = struct{}{}
	}

	seen := make(map[models.StudentID]int)
	for i, g := range ctx.Groups {
		for _, m := range g.Members {
			if prev, ok := seen[m.ID]; ok && prev != i {
				return denied(result.KindInvalidGroupSet,
					"invalid group set: student %s appears in groups %d and %d", m.ID, prev+1, i+1)
			}
			seen[m.ID] = i
			if _, ok := onRoster[m.ID]; !ok {
				return denied(result.KindInvalidGroupSet,
					"invalid group set: student %s is not on the course roster", m.ID)
			}
		}
	}
	return allowed()
}

// NameContext provides context for the group set name guard.
type NameContext struct {
	Name string
}

// CanName evaluates whether a group set name is acceptable.
func CanName(ctx NameContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return denied(result.KindInvalidRequest, "invalid request: group set name cannot be empty")
	}
	return allowed()
}

// MoveContext provides context for moving a member between groups.
type MoveContext struct {
	GroupSet  models.GroupSet
	StudentID models.StudentID
	ToGroup   int // zero-based; len(Groups) opens a new group
}

// CanMoveMember evaluates whether a student can be moved to the target group.
// Rules:
// - The student must be in the group set
// - The target must be an existing group or the next new one
func CanMoveMember(ctx MoveContext) GuardResult {
	if ctx.GroupSet.GroupOf(ctx.StudentID) < 0 {
		return denied(result.KindNotFound, "student %s not found in group set %s", ctx.StudentID, ctx.GroupSet.ID)
	}
	if ctx.ToGroup < 0 || ctx.ToGroup > len(ctx.GroupSet.Groups) {
		return denied(result.KindInvalidRequest,
			"invalid request: group %d does not exist (group set has %d groups)", ctx.ToGroup+1, len(ctx.GroupSet.Groups))
	}
	return allowed()
}
