// Package primary defines the primary ports (driving adapters) for the application.
// Every operation takes the acting teacher explicitly; business failures travel in
// the returned Result, infrastructure failures in the error.
package primary

import (
	"context"
	"time"

	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
)

// GroupSetService defines the primary port for recorded group set operations.
type GroupSetService interface {
	// CreateGroupSet records a new group set for a course.
	// With Size set and no Groups, the groups are assigned first.
	CreateGroupSet(ctx context.Context, teacher models.TeacherID, req CreateGroupSetRequest) (result.Result[models.GroupSet], error)

	// SaveGroupSet replaces the name and groups of a recorded group set.
	SaveGroupSet(ctx context.Context, teacher models.TeacherID, groupSet models.GroupSet) (result.Result[models.GroupSet], error)

	// DeleteGroupSet removes a recorded group set.
	DeleteGroupSet(ctx context.Context, teacher models.TeacherID, groupSet models.GroupSet) (result.Result[bool], error)

	// GetGroupSet retrieves a group set by ID.
	GetGroupSet(ctx context.Context, teacher models.TeacherID, id models.GroupSetID) (result.Result[models.GroupSet], error)

	// ListGroupSets retrieves a course's group sets, newest first.
	ListGroupSets(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[[]models.GroupSet], error)

	// MoveMember moves one student to another group of a recorded set and saves it.
	MoveMember(ctx context.Context, teacher models.TeacherID, req MoveMemberRequest) (result.Result[models.GroupSet], error)
}

// CreateGroupSetRequest contains parameters for recording a group set.
type CreateGroupSetRequest struct {
	CourseID  models.CourseID `json:"course_id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Groups    []models.Group  `json:"groups"`
	Size      int             `json:"size" validate:"gte=0"`
	CreatedAt time.Time       `json:"created_at"` // zero means now
}

// MoveMemberRequest contains parameters for moving a student between groups.
type MoveMemberRequest struct {
	GroupSetID models.GroupSetID `json:"group_set_id" validate:"required"`
	StudentID  models.StudentID  `json:"student_id" validate:"required"`
	ToGroup    int               `json:"to_group" validate:"gte=0"` // zero-based; len(groups) opens a new group
}
