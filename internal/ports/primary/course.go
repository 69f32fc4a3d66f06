package primary

import (
	"context"

	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
)

// CourseService defines the primary port for course and roster operations.
type CourseService interface {
	// CreateCourse creates a course owned by teacher.
	CreateCourse(ctx context.Context, teacher models.TeacherID, req CreateCourseRequest) (result.Result[models.Course], error)

	// UpdateCourse replaces a course's name and roster.
	UpdateCourse(ctx context.Context, teacher models.TeacherID, req UpdateCourseRequest) (result.Result[models.Course], error)

	// DeleteCourse deletes a course together with its group sets.
	DeleteCourse(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[bool], error)

	// GetCourse retrieves one of teacher's courses.
	GetCourse(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[models.Course], error)

	// ListCourses retrieves all of teacher's courses.
	ListCourses(ctx context.Context, teacher models.TeacherID) ([]models.Course, error)
}

// CreateCourseRequest contains parameters for creating a course.
// Students without an ID are assigned one.
type CreateCourseRequest struct {
	Name     string           `json:"name" validate:"required"`
	Students []models.Student `json:"students"`
}

// UpdateCourseRequest contains parameters for updating a course.
type UpdateCourseRequest struct {
	CourseID models.CourseID  `json:"course_id" validate:"required"`
	Name     string           `json:"name" validate:"required"`
	Students []models.Student `json:"students"`
}
