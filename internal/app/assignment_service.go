package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/brian-watkins/groupwork-sub000/internal/core/assignment"
	"github.com/brian-watkins/groupwork-sub000/internal/core/collaboration"
	"github.com/brian-watkins/groupwork-sub000/internal/core/groupset"
	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

// AssignmentServiceImpl implements the AssignmentService interface.
type AssignmentServiceImpl struct {
	courseRepo  secondary.CourseRepository
	historyRepo secondary.GroupHistoryRepository
	authorizer  secondary.TeacherAuthorizer
	newPicker   func() assignment.Picker
	logger      *zap.Logger
}

// NewAssignmentService creates a new AssignmentService with injected dependencies.
func NewAssignmentService(
	courseRepo secondary.CourseRepository,
	historyRepo secondary.GroupHistoryRepository,
	authorizer secondary.TeacherAuthorizer,
	logger *zap.Logger,
) *AssignmentServiceImpl {
	return &AssignmentServiceImpl{
		courseRepo:  courseRepo,
		historyRepo: historyRepo,
		authorizer:  authorizer,
		newPicker:   assignment.NewPicker,
		logger:      logger,
	}
}

// WithPicker replaces the picker factory. A fresh picker is requested for every assignment.
func (s *AssignmentServiceImpl) WithPicker(newPicker func() assignment.Picker) *AssignmentServiceImpl {
	s.newPicker = newPicker
	return s
}

// AssignGroups partitions a course roster without recording anything.
// The course read doubles as the authorization check: a course the teacher does
// not own is indistinguishable from a missing one and reported as unauthorized.
func (s *AssignmentServiceImpl) AssignGroups(ctx context.Context, teacher models.TeacherID, req primary.AssignGroupsRequest) (result.Result[[]models.Group], error) {
	if f, err := validateRequest(req); err != nil || f != nil {
		return result.Fail[[]models.Group](f), err
	}

	record, err := s.courseRepo.Get(ctx, string(teacher), string(req.CourseID))
	if errors.Is(err, secondary.ErrNotFound) {
		s.logger.Warn("group assignment denied",
			zap.String("teacher_id", string(teacher)),
			zap.String("course_id", string(req.CourseID)),
		)
		return result.Fail[[]models.Group](result.Unauthorized(string(teacher), string(req.CourseID))), nil
	}
	if err != nil {
		return result.Result[[]models.Group]{}, fmt.Errorf("failed to load course: %w", err)
	}

	res, err := assignRoster(ctx, s.historyRepo, recordToCourse(record), req.Size, s.newPicker())
	if err != nil {
		return res, err
	}
	if res.IsOk() {
		s.logger.Info("groups assigned",
			zap.String("teacher_id", string(teacher)),
			zap.String("course_id", string(req.CourseID)),
			zap.Int("size", req.Size),
			zap.Int("groups", len(res.Value())),
		)
	}
	return res, nil
}

// RepeatPairings reports previously seen co-members for each proposed group.
func (s *AssignmentServiceImpl) RepeatPairings(ctx context.Context, teacher models.TeacherID, req primary.RepeatPairingsRequest) (result.Result[[]primary.GroupPairings], error) {
	if f, err := validateRequest(req); err != nil || f != nil {
		return result.Fail[[]primary.GroupPairings](f), err
	}

	if f, err := authorize(ctx, s.authorizer, s.logger, teacher, req.CourseID); err != nil || f != nil {
		return result.Fail[[]primary.GroupPairings](f), err
	}

	records, err := s.historyRepo.GetHistory(ctx, string(req.CourseID))
	if err != nil {
		return result.Result[[]primary.GroupPairings]{}, fmt.Errorf("failed to load group history: %w", err)
	}

	history := collaboration.Build(recordsToGroups(records))
	pairings := make([]primary.GroupPairings, len(req.Groups))
	for i, g := range req.Groups {
		pairings[i] = primary.GroupPairings{
			Group:   g,
			Repeats: history.RepeatPairings(g),
		}
	}
	return result.Ok(pairings), nil
}

// assignRoster validates the size against the roster, then reads history and partitions.
// An invalid size fails before the history store is touched.
func assignRoster(ctx context.Context, historyRepo secondary.GroupHistoryRepository, course models.Course, size int, picker assignment.Picker) (result.Result[[]models.Group], error) {
	if f := assignment.ValidateGroupSize(size, course.StudentCount()); f != nil {
		return result.Fail[[]models.Group](f), nil
	}

	records, err := historyRepo.GetHistory(ctx, string(course.ID))
	if err != nil {
		return result.Result[[]models.Group]{}, fmt.Errorf("failed to load group history: %w", err)
	}

	return assignment.Assign(assignment.Input{
		Students: course.Students,
		History:  recordsToGroups(records),
		Size:     size,
	}, picker), nil
}

// authorize runs the course ownership guard. A nil failure means the teacher may proceed.
func authorize(ctx context.Context, authorizer secondary.TeacherAuthorizer, logger *zap.Logger, teacher models.TeacherID, courseID models.CourseID) (*result.Failure, error) {
	canManage := false
	if teacher != "" {
		var err error
		canManage, err = authorizer.CanManageCourse(ctx, string(teacher), string(courseID))
		if err != nil {
			return nil, fmt.Errorf("failed to check course authorization: %w", err)
		}
	}

	guard := groupset.CanManageCourse(groupset.ManageCourseContext{
		TeacherID: string(teacher),
		CourseID:  string(courseID),
		CanManage: canManage,
	})
	if f := guard.Failure(); f != nil {
		logger.Warn("course authorization denied",
			zap.String("teacher_id", string(teacher)),
			zap.String("course_id", string(courseID)),
		)
		return f, nil
	}
	return nil, nil
}

// Ensure AssignmentServiceImpl implements the interface.
var _ primary.AssignmentService = (*AssignmentServiceImpl)(nil)
