package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brian-watkins/groupwork-sub000/internal/core/course"
	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

// CourseServiceImpl implements the CourseService interface.
type CourseServiceImpl struct {
	courseRepo secondary.CourseRepository
	authorizer secondary.TeacherAuthorizer
	newID      func() string
	logger     *zap.Logger
}

// NewCourseService creates a new CourseService with injected dependencies.
func NewCourseService(courseRepo secondary.CourseRepository, authorizer secondary.TeacherAuthorizer, logger *zap.Logger) *CourseServiceImpl {
	return &CourseServiceImpl{
		courseRepo: courseRepo,
		authorizer: authorizer,
		newID:      uuid.NewString,
		logger:     logger,
	}
}

// CreateCourse creates a course owned by teacher.
func (s *CourseServiceImpl) CreateCourse(ctx context.Context, teacher models.TeacherID, req primary.CreateCourseRequest) (result.Result[models.Course], error) {
	if teacher == "" {
		return result.Fail[models.Course](result.Unauthorized("", "")), nil
	}
	if f, err := validateRequest(req); err != nil || f != nil {
		return result.Fail[models.Course](f), err
	}
	if f := rosterFailure(req.Name, req.Students); f != nil {
		return result.Fail[models.Course](f), nil
	}

	nextID, err := s.courseRepo.GetNextID(ctx)
	if err != nil {
		return result.Result[models.Course]{}, fmt.Errorf("failed to generate course ID: %w", err)
	}

	record := &secondary.CourseRecord{
		ID:        nextID,
		TeacherID: string(teacher),
		Name:      req.Name,
		Students:  studentsToRecords(s.assignStudentIDs(req.Students)),
	}
	if err := s.courseRepo.Create(ctx, record); err != nil {
		return result.Result[models.Course]{}, fmt.Errorf("failed to create course: %w", err)
	}

	created, err := s.courseRepo.Get(ctx, string(teacher), nextID)
	if err != nil {
		return result.Result[models.Course]{}, fmt.Errorf("failed to fetch created course: %w", err)
	}

	s.logger.Info("course created",
		zap.String("teacher_id", string(teacher)),
		zap.String("course_id", nextID),
		zap.Int("students", len(record.Students)),
	)
	return result.Ok(recordToCourse(created)), nil
}

// UpdateCourse replaces a course's name and roster.
func (s *CourseServiceImpl) UpdateCourse(ctx context.Context, teacher models.TeacherID, req primary.UpdateCourseRequest) (result.Result[models.Course], error) {
	if f, err := validateRequest(req); err != nil || f != nil {
		return result.Fail[models.Course](f), err
	}

	if f, err := authorize(ctx, s.authorizer, s.logger, teacher, req.CourseID); err != nil || f != nil {
		return result.Fail[models.Course](f), err
	}

	if f := rosterFailure(req.Name, req.Students); f != nil {
		return result.Fail[models.Course](f), nil
	}

	record := &secondary.CourseRecord{
		ID:        string(req.CourseID),
		TeacherID: string(teacher),
		Name:      req.Name,
		Students:  studentsToRecords(s.assignStudentIDs(req.Students)),
	}
	err := s.courseRepo.Update(ctx, record)
	if errors.Is(err, secondary.ErrNotFound) {
		return result.Fail[models.Course](result.NotFound("course", string(req.CourseID))), nil
	}
	if err != nil {
		return result.Result[models.Course]{}, fmt.Errorf("failed to update course: %w", err)
	}

	updated, err := s.courseRepo.Get(ctx, string(teacher), string(req.CourseID))
	if err != nil {
		return result.Result[models.Course]{}, fmt.Errorf("failed to fetch updated course: %w", err)
	}

	s.logger.Info("course updated",
		zap.String("teacher_id", string(teacher)),
		zap.String("course_id", string(req.CourseID)),
		zap.Int("students", len(record.Students)),
	)
	return result.Ok(recordToCourse(updated)), nil
}

// DeleteCourse deletes a course together with its group sets.
func (s *CourseServiceImpl) DeleteCourse(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[bool], error) {
	if f, err := authorize(ctx, s.authorizer, s.logger, teacher, courseID); err != nil || f != nil {
		return result.Fail[bool](f), err
	}

	err := s.courseRepo.Delete(ctx, string(courseID))
	if errors.Is(err, secondary.ErrNotFound) {
		return result.Fail[bool](result.NotFound("course", string(courseID))), nil
	}
	if err != nil {
		return result.Result[bool]{}, fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info("course deleted",
		zap.String("teacher_id", string(teacher)),
		zap.String("course_id", string(courseID)),
	)
	return result.Ok(true), nil
}

// GetCourse retrieves one of teacher's courses. Someone else's course is not found.
func (s *CourseServiceImpl) GetCourse(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[models.Course], error) {
	record, err := s.courseRepo.Get(ctx, string(teacher), string(courseID))
	if errors.Is(err, secondary.ErrNotFound) {
		return result.Fail[models.Course](result.NotFound("course", string(courseID))), nil
	}
	if err != nil {
		return result.Result[models.Course]{}, fmt.Errorf("failed to get course: %w", err)
	}
	return result.Ok(recordToCourse(record)), nil
}

// ListCourses retrieves all of teacher's courses.
func (s *CourseServiceImpl) ListCourses(ctx context.Context, teacher models.TeacherID) ([]models.Course, error) {
	records, err := s.courseRepo.GetAll(ctx, string(teacher))
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	courses := make([]models.Course, len(records))
	for i, r := range records {
		courses[i] = recordToCourse(r)
	}
	return courses, nil
}

// Helper methods

// assignStudentIDs returns a copy of students where every student has an ID.
func (s *CourseServiceImpl) assignStudentIDs(students []models.Student) []models.Student {
	out := make([]models.Student, len(students))
	for i, st := range students {
		if st.ID == "" {
			st.ID = models.StudentID(s.newID())
		}
		out[i] = st
	}
	return out
}

func rosterFailure(name string, students []models.Student) *result.Failure {
	guard := course.CanSaveCourse(course.RosterContext{Name: name, Students: students})
	if guard.Allowed {
		return nil
	}
	return &result.Failure{Kind: result.KindInvalidRequest, Message: guard.Reason}
}

// Ensure CourseServiceImpl implements the interface.
var _ primary.CourseService = (*CourseServiceImpl)(nil)
