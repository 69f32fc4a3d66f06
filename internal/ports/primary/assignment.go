package primary

import (
	"context"

	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
)

// AssignmentService defines the primary port for unrecorded group assignment.
type AssignmentService interface {
	// AssignGroups partitions a course roster into groups of about req.Size,
	// avoiding pairings recorded in earlier group sets. Nothing is persisted.
	AssignGroups(ctx context.Context, teacher models.TeacherID, req AssignGroupsRequest) (result.Result[[]models.Group], error)

	// RepeatPairings reports, for each proposed group, which members have worked together before.
	RepeatPairings(ctx context.Context, teacher models.TeacherID, req RepeatPairingsRequest) (result.Result[[]GroupPairings], error)
}

// AssignGroupsRequest contains parameters for assigning groups.
type AssignGroupsRequest struct {
	CourseID models.CourseID `json:"course_id" validate:"required"`
	Size     int             `json:"size"`
}

// RepeatPairingsRequest contains the groups to check against a course's history.
type RepeatPairingsRequest struct {
	CourseID models.CourseID `json:"course_id" validate:"required"`
	Groups   []models.Group  `json:"groups"`
}

// GroupPairings is the repeat-pairing hint for one group.
type GroupPairings struct {
	Group models.Group
	// Repeats maps each member to the co-members they have already worked with.
	Repeats map[models.StudentID][]models.Student
}

// HasRepeat reports whether any member has a repeat.
func (p GroupPairings) HasRepeat() bool {
	for _, r := range p.Repeats {
		if len(r) > 0 {
			return true
		}
	}
	return false
}
