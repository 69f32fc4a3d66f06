package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/brian-watkins/groupwork-sub000/internal/core/assignment"
	"github.com/brian-watkins/groupwork-sub000/internal/core/groupset"
	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

// GroupSetServiceImpl implements the GroupSetService interface.
type GroupSetServiceImpl struct {
	courseRepo   secondary.CourseRepository
	groupSetRepo secondary.GroupSetRepository
	historyRepo  secondary.GroupHistoryRepository
	authorizer   secondary.TeacherAuthorizer
	newPicker    func() assignment.Picker
	now          func() time.Time
	logger       *zap.Logger
}

// NewGroupSetService creates a new GroupSetService with injected dependencies.
func NewGroupSetService(
	courseRepo secondary.CourseRepository,
	groupSetRepo secondary.GroupSetRepository,
	historyRepo secondary.GroupHistoryRepository,
	authorizer secondary.TeacherAuthorizer,
	logger *zap.Logger,
) *GroupSetServiceImpl {
	return &GroupSetServiceImpl{
		courseRepo:   courseRepo,
		groupSetRepo: groupSetRepo,
		historyRepo:  historyRepo,
		authorizer:   authorizer,
		newPicker:    assignment.NewPicker,
		now:          time.Now,
		logger:       logger,
	}
}

// WithPicker replaces the picker factory used when a group set is created from a size.
func (s *GroupSetServiceImpl) WithPicker(newPicker func() assignment.Picker) *GroupSetServiceImpl {
	s.newPicker = newPicker
	return s
}

// WithClock replaces the clock used to stamp new group sets.
func (s *GroupSetServiceImpl) WithClock(now func() time.Time) *GroupSetServiceImpl {
	s.now = now
	return s
}

// CreateGroupSet records a new group set for a course.
func (s *GroupSetServiceImpl) CreateGroupSet(ctx context.Context, teacher models.TeacherID, req primary.CreateGroupSetRequest) (result.Result[models.GroupSet], error) {
	if f, err := validateRequest(req); err != nil || f != nil {
		return result.Fail[models.GroupSet](f), err
	}
	if f := groupset.CanName(groupset.NameContext{Name: req.Name}).Failure(); f != nil {
		return result.Fail[models.GroupSet](f), nil
	}

	if f, err := authorize(ctx, s.authorizer, s.logger, teacher, req.CourseID); err != nil || f != nil {
		return result.Fail[models.GroupSet](f), err
	}

	course, f, err := s.loadCourse(ctx, teacher, req.CourseID)
	if err != nil || f != nil {
		return result.Fail[models.GroupSet](f), err
	}

	groups := req.Groups
	if len(groups) == 0 && req.Size > 0 {
		assigned, err := assignRoster(ctx, s.historyRepo, course, req.Size, s.newPicker())
		if err != nil {
			return result.Result[models.GroupSet]{}, err
		}
		if assigned.IsErr() {
			return result.Fail[models.GroupSet](assigned.Failure()), nil
		}
		groups = assigned.Value()
	}

	groups = groupset.Compact(groups)
	if f := groupset.ValidatePartition(groupset.PartitionContext{Roster: course.Students, Groups: groups}).Failure(); f != nil {
		return result.Fail[models.GroupSet](f), nil
	}

	createdAt := req.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	nextID, err := s.groupSetRepo.GetNextID(ctx)
	if err != nil {
		return result.Result[models.GroupSet]{}, fmt.Errorf("failed to generate group set ID: %w", err)
	}

	record := groupSetToRecord(models.GroupSet{
		ID:        models.GroupSetID(nextID),
		Name:      req.Name,
		CourseID:  req.CourseID,
		Groups:    groups,
		CreatedAt: normalizeTime(createdAt),
	})
	if err := s.groupSetRepo.Create(ctx, record); err != nil {
		return result.Result[models.GroupSet]{}, fmt.Errorf("failed to create group set: %w", err)
	}

	created, err := s.groupSetRepo.GetByID(ctx, nextID)
	if err != nil {
		return result.Result[models.GroupSet]{}, fmt.Errorf("failed to fetch created group set: %w", err)
	}

	s.logger.Info("group set created",
		zap.String("teacher_id", string(teacher)),
		zap.String("course_id", string(req.CourseID)),
		zap.String("group_set_id", nextID),
		zap.Int("groups", len(groups)),
	)
	return result.Ok(recordToGroupSet(created)), nil
}

// SaveGroupSet replaces the name and groups of a recorded group set.
// The creation time and course cannot change.
func (s *GroupSetServiceImpl) SaveGroupSet(ctx context.Context, teacher models.TeacherID, gs models.GroupSet) (result.Result[models.GroupSet], error) {
	if gs.ID == "" {
		return result.Fail[models.GroupSet](result.InvalidRequest("id")), nil
	}

	if f, err := authorize(ctx, s.authorizer, s.logger, teacher, gs.CourseID); err != nil || f != nil {
		return result.Fail[models.GroupSet](f), err
	}

	existing, f, err := s.loadGroupSet(ctx, gs.ID)
	if err != nil || f != nil {
		return result.Fail[models.GroupSet](f), err
	}
	if existing.CourseID != string(gs.CourseID) {
		return result.Fail[models.GroupSet](result.NotFound("group set", string(gs.ID))), nil
	}

	return s.save(ctx, teacher, existing, gs.Name, gs.Groups)
}

// DeleteGroupSet removes a recorded group set.
func (s *GroupSetServiceImpl) DeleteGroupSet(ctx context.Context, teacher models.TeacherID, gs models.GroupSet) (result.Result[bool], error) {
	if gs.ID == "" {
		return result.Fail[bool](result.InvalidRequest("id")), nil
	}

	if f, err := authorize(ctx, s.authorizer, s.logger, teacher, gs.CourseID); err != nil || f != nil {
		return result.Fail[bool](f), err
	}

	existing, f, err := s.loadGroupSet(ctx, gs.ID)
	if err != nil || f != nil {
		return result.Fail[bool](f), err
	}
	if existing.CourseID != string(gs.CourseID) {
		return result.Fail[bool](result.NotFound("group set", string(gs.ID))), nil
	}

	if err := s.groupSetRepo.Delete(ctx, existing.ID); err != nil {
		return result.Result[bool]{}, fmt.Errorf("failed to delete group set: %w", err)
	}

	s.logger.Info("group set deleted",
		zap.String("teacher_id", string(teacher)),
		zap.String("course_id", existing.CourseID),
		zap.String("group_set_id", existing.ID),
	)
	return result.Ok(true), nil
}

// GetGroupSet retrieves a group set by ID.
func (s *GroupSetServiceImpl) GetGroupSet(ctx context.Context, teacher models.TeacherID, id models.GroupSetID) (result.Result[models.GroupSet], error) {
	record, f, err := s.loadGroupSet(ctx, id)
	if err != nil || f != nil {
		return result.Fail[models.GroupSet](f), err
	}

	if f, err := authorize(ctx, s.authorizer, s.logger, teacher, models.CourseID(record.CourseID)); err != nil || f != nil {
		return result.Fail[models.GroupSet](f), err
	}

	return result.Ok(recordToGroupSet(record)), nil
}

// ListGroupSets retrieves a course's group sets, newest first.
func (s *GroupSetServiceImpl) ListGroupSets(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[[]models.GroupSet], error) {
	if f, err := authorize(ctx, s.authorizer, s.logger, teacher, courseID); err != nil || f != nil {
		return result.Fail[[]models.GroupSet](f), err
	}

	records, err := s.groupSetRepo.ListByCourse(ctx, string(courseID))
	if err != nil {
		return result.Result[[]models.GroupSet]{}, fmt.Errorf("failed to list group sets: %w", err)
	}

	sets := make([]models.GroupSet, len(records))
	for i, r := range records {
		sets[i] = recordToGroupSet(r)
	}
	return result.Ok(sets), nil
}

// MoveMember moves one student to another group and saves the set.
func (s *GroupSetServiceImpl) MoveMember(ctx context.Context, teacher models.TeacherID, req primary.MoveMemberRequest) (result.Result[models.GroupSet], error) {
	if f, err := validateRequest(req); err != nil || f != nil {
		return result.Fail[models.GroupSet](f), err
	}

	existing, f, err := s.loadGroupSet(ctx, req.GroupSetID)
	if err != nil || f != nil {
		return result.Fail[models.GroupSet](f), err
	}

	if f, err := authorize(ctx, s.authorizer, s.logger, teacher, models.CourseID(existing.CourseID)); err != nil || f != nil {
		return result.Fail[models.GroupSet](f), err
	}

	current := recordToGroupSet(existing)
	guard := groupset.CanMoveMember(groupset.MoveContext{
		GroupSet:  current,
		StudentID: req.StudentID,
		ToGroup:   req.ToGroup,
	})
	if f := guard.Failure(); f != nil {
		return result.Fail[models.GroupSet](f), nil
	}

	return s.save(ctx, teacher, existing, current.Name, groupset.MoveMember(current.Groups, req.StudentID, req.ToGroup))
}

// save validates and persists new content for an already authorized group set.
func (s *GroupSetServiceImpl) save(ctx context.Context, teacher models.TeacherID, existing *secondary.GroupSetRecord, name string, groups []models.Group) (result.Result[models.GroupSet], error) {
	if f := groupset.CanName(groupset.NameContext{Name: name}).Failure(); f != nil {
		return result.Fail[models.GroupSet](f), nil
	}

	course, f, err := s.loadCourse(ctx, teacher, models.CourseID(existing.CourseID))
	if err != nil || f != nil {
		return result.Fail[models.GroupSet](f), err
	}

	groups = groupset.Compact(groups)
	if f := groupset.ValidatePartition(groupset.PartitionContext{Roster: course.Students, Groups: groups}).Failure(); f != nil {
		return result.Fail[models.GroupSet](f), nil
	}

	record := &secondary.GroupSetRecord{
		ID:        existing.ID,
		CourseID:  existing.CourseID,
		Name:      name,
		Groups:    groupsToRecords(groups),
		CreatedAt: existing.CreatedAt,
	}
	if err := s.groupSetRepo.Save(ctx, record); err != nil {
		return result.Result[models.GroupSet]{}, fmt.Errorf("failed to save group set: %w", err)
	}

	saved, err := s.groupSetRepo.GetByID(ctx, existing.ID)
	if err != nil {
		return result.Result[models.GroupSet]{}, fmt.Errorf("failed to fetch saved group set: %w", err)
	}

	s.logger.Info("group set saved",
		zap.String("teacher_id", string(teacher)),
		zap.String("course_id", existing.CourseID),
		zap.String("group_set_id", existing.ID),
	)
	return result.Ok(recordToGroupSet(saved)), nil
}

func (s *GroupSetServiceImpl) loadGroupSet(ctx context.Context, id models.GroupSetID) (*secondary.GroupSetRecord, *result.Failure, error) {
	record, err := s.groupSetRepo.GetByID(ctx, string(id))
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, result.NotFound("group set", string(id)), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load group set: %w", err)
	}
	return record, nil, nil
}

func (s *GroupSetServiceImpl) loadCourse(ctx context.Context, teacher models.TeacherID, id models.CourseID) (models.Course, *result.Failure, error) {
	record, err := s.courseRepo.Get(ctx, string(teacher), string(id))
	if errors.Is(err, secondary.ErrNotFound) {
		return models.Course{}, result.NotFound("course", string(id)), nil
	}
	if err != nil {
		return models.Course{}, nil, fmt.Errorf("failed to load course: %w", err)
	}
	return recordToCourse(record), nil, nil
}

// normalizeTime stores timestamps in UTC at millisecond precision, which every backend round-trips.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Ensure GroupSetServiceImpl implements the interface.
var _ primary.GroupSetService = (*GroupSetServiceImpl)(nil)
