package cli

import (
	"context"

	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
)

// mockCourseService implements primary.CourseService for testing
type mockCourseService struct {
	createCourseFn func(ctx context.Context, teacher models.TeacherID, req primary.CreateCourseRequest) (result.Result[models.Course], error)
	updateCourseFn func(ctx context.Context, teacher models.TeacherID, req primary.UpdateCourseRequest) (result.Result[models.Course], error)
	deleteCourseFn func(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[bool], error)
	getCourseFn    func(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[models.Course], error)
	listCoursesFn  func(ctx context.Context, teacher models.TeacherID) ([]models.Course, error)

	// Track calls for verification
	lastUpdateReq primary.UpdateCourseRequest
}

func (m *mockCourseService) CreateCourse(ctx context.Context, teacher models.TeacherID, req primary.CreateCourseRequest) (result.Result[models.Course], error) {
	if m.createCourseFn != nil {
		return m.createCourseFn(ctx, teacher, req)
	}
	return result.Ok(models.Course{ID: "COURSE-001", Name: req.Name, Students: req.Students}), nil
}

func (m *mockCourseService) UpdateCourse(ctx context.Context, teacher models.TeacherID, req primary.UpdateCourseRequest) (result.Result[models.Course], error) {
	m.lastUpdateReq = req
	if m.updateCourseFn != nil {
		return m.updateCourseFn(ctx, teacher, req)
	}
	students := make([]models.Student, len(req.Students))
	for i, s := range req.Students {
		if s.ID == "" {
			s.ID = "new-id"
		}
		students[i] = s
	}
	return result.Ok(models.Course{ID: req.CourseID, Name: req.Name, Students: students}), nil
}

func (m *mockCourseService) DeleteCourse(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[bool], error) {
	if m.deleteCourseFn != nil {
		return m.deleteCourseFn(ctx, teacher, courseID)
	}
	return result.Ok(true), nil
}

func (m *mockCourseService) GetCourse(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[models.Course], error) {
	if m.getCourseFn != nil {
		return m.getCourseFn(ctx, teacher, courseID)
	}
	return result.Ok(models.Course{
		ID:   courseID,
		Name: "Algebra",
		Students: []models.Student{
			{ID: "s1", Name: "Ada"},
			{ID: "s2", Name: "Grace"},
		},
	}), nil
}

func (m *mockCourseService) ListCourses(ctx context.Context, teacher models.TeacherID) ([]models.Course, error) {
	if m.listCoursesFn != nil {
		return m.listCoursesFn(ctx, teacher)
	}
	return []models.Course{}, nil
}

// mockGroupSetService implements primary.GroupSetService for testing
type mockGroupSetService struct {
	createGroupSetFn func(ctx context.Context, teacher models.TeacherID, req primary.CreateGroupSetRequest) (result.Result[models.GroupSet], error)
	saveGroupSetFn   func(ctx context.Context, teacher models.TeacherID, gs models.GroupSet) (result.Result[models.GroupSet], error)
	deleteGroupSetFn func(ctx context.Context, teacher models.TeacherID, gs models.GroupSet) (result.Result[bool], error)
	getGroupSetFn    func(ctx context.Context, teacher models.TeacherID, id models.GroupSetID) (result.Result[models.GroupSet], error)
	listGroupSetsFn  func(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[[]models.GroupSet], error)
	moveMemberFn     func(ctx context.Context, teacher models.TeacherID, req primary.MoveMemberRequest) (result.Result[models.GroupSet], error)

	lastCreateReq primary.CreateGroupSetRequest
	lastSaved     models.GroupSet
	lastMoveReq   primary.MoveMemberRequest
	createCalls   int
}

func (m *mockGroupSetService) CreateGroupSet(ctx context.Context, teacher models.TeacherID, req primary.CreateGroupSetRequest) (result.Result[models.GroupSet], error) {
	m.lastCreateReq = req
	m.createCalls++
	if m.createGroupSetFn != nil {
		return m.createGroupSetFn(ctx, teacher, req)
	}
	return result.Ok(models.GroupSet{ID: "GS-001", Name: req.Name, CourseID: req.CourseID, Groups: req.Groups}), nil
}

func (m *mockGroupSetService) SaveGroupSet(ctx context.Context, teacher models.TeacherID, gs models.GroupSet) (result.Result[models.GroupSet], error) {
	m.lastSaved = gs
	if m.saveGroupSetFn != nil {
		return m.saveGroupSetFn(ctx, teacher, gs)
	}
	return result.Ok(gs), nil
}

func (m *mockGroupSetService) DeleteGroupSet(ctx context.Context, teacher models.TeacherID, gs models.GroupSet) (result.Result[bool], error) {
	if m.deleteGroupSetFn != nil {
		return m.deleteGroupSetFn(ctx, teacher, gs)
	}
	return result.Ok(true), nil
}

func (m *mockGroupSetService) GetGroupSet(ctx context.Context, teacher models.TeacherID, id models.GroupSetID) (result.Result[models.GroupSet], error) {
	if m.getGroupSetFn != nil {
		return m.getGroupSetFn(ctx, teacher, id)
	}
	return result.Ok(sampleGroupSet(id)), nil
}

func (m *mockGroupSetService) ListGroupSets(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[[]models.GroupSet], error) {
	if m.listGroupSetsFn != nil {
		return m.listGroupSetsFn(ctx, teacher, courseID)
	}
	return result.Ok([]models.GroupSet{}), nil
}

func (m *mockGroupSetService) MoveMember(ctx context.Context, teacher models.TeacherID, req primary.MoveMemberRequest) (result.Result[models.GroupSet], error) {
	m.lastMoveReq = req
	if m.moveMemberFn != nil {
		return m.moveMemberFn(ctx, teacher, req)
	}
	gs := sampleGroupSet(req.GroupSetID)
	from := gs.GroupOf(req.StudentID)
	if from >= 0 && req.ToGroup < len(gs.Groups) {
		var moved models.Student
		for _, s := range gs.Groups[from].Members {
			if s.ID == req.StudentID {
				moved = s
			}
		}
		gs.Groups[from].Remove(req.StudentID)
		gs.Groups[req.ToGroup].Add(moved)
	}
	return result.Ok(gs), nil
}

// mockAssignmentService implements primary.AssignmentService for testing
type mockAssignmentService struct {
	assignGroupsFn   func(ctx context.Context, teacher models.TeacherID, req primary.AssignGroupsRequest) (result.Result[[]models.Group], error)
	repeatPairingsFn func(ctx context.Context, teacher models.TeacherID, req primary.RepeatPairingsRequest) (result.Result[[]primary.GroupPairings], error)
}

func (m *mockAssignmentService) AssignGroups(ctx context.Context, teacher models.TeacherID, req primary.AssignGroupsRequest) (result.Result[[]models.Group], error) {
	if m.assignGroupsFn != nil {
		return m.assignGroupsFn(ctx, teacher, req)
	}
	return result.Ok(sampleGroupSet("").Groups), nil
}

func (m *mockAssignmentService) RepeatPairings(ctx context.Context, teacher models.TeacherID, req primary.RepeatPairingsRequest) (result.Result[[]primary.GroupPairings], error) {
	if m.repeatPairingsFn != nil {
		return m.repeatPairingsFn(ctx, teacher, req)
	}
	out := make([]primary.GroupPairings, len(req.Groups))
	for i, g := range req.Groups {
		out[i] = primary.GroupPairings{Group: g, Repeats: map[models.StudentID][]models.Student{}}
	}
	return result.Ok(out), nil
}

// mockLogService implements primary.LogService for testing
type mockLogService struct {
	listLogsFn  func(ctx context.Context, teacher models.TeacherID, filters primary.LogFilters) (result.Result[[]*primary.LogEntry], error)
	prunedDays  int
	pruneResult int
}

func (m *mockLogService) ListLogs(ctx context.Context, teacher models.TeacherID, filters primary.LogFilters) (result.Result[[]*primary.LogEntry], error) {
	if m.listLogsFn != nil {
		return m.listLogsFn(ctx, teacher, filters)
	}
	return result.Ok([]*primary.LogEntry{}), nil
}

func (m *mockLogService) PruneLogs(ctx context.Context, days int) (int, error) {
	m.prunedDays = days
	return m.pruneResult, nil
}

func sampleGroupSet(id models.GroupSetID) models.GroupSet {
	return models.GroupSet{
		ID:       id,
		Name:     "Week 1",
		CourseID: "COURSE-001",
		Groups: []models.Group{
			models.NewGroup(models.Student{ID: "s1", Name: "Ada"}, models.Student{ID: "s2", Name: "Grace"}),
			models.NewGroup(models.Student{ID: "s3", Name: "Alan"}, models.Student{ID: "s4", Name: "Edsger"}),
		},
	}
}
