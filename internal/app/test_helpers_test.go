package app

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/brian-watkins/groupwork-sub000/internal/core/assignment"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ============================================================================
// Course repository mock
// ============================================================================

var _ secondary.CourseRepository = (*mockCourseRepository)(nil)

type mockCourseRepository struct {
	courses map[string]*secondary.CourseRecord
	nextID  int

	getErr    error
	createErr error
	updateErr error
	deleteErr error

	// mutation counters
	creates int
	updates int
	deletes int
}

func newMockCourseRepository() *mockCourseRepository {
	return &mockCourseRepository{
		courses: make(map[string]*secondary.CourseRecord),
		nextID:  1,
	}
}

func (m *mockCourseRepository) mutations() int {
	return m.creates + m.updates + m.deletes
}

func (m *mockCourseRepository) Create(ctx context.Context, course *secondary.CourseRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	m.courses[course.ID] = copyCourse(course)
	return nil
}

func (m *mockCourseRepository) Get(ctx context.Context, teacherID, courseID string) (*secondary.CourseRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.courses[courseID]
	if !ok || c.TeacherID != teacherID {
		return nil, fmt.Errorf("course %s: %w", courseID, secondary.ErrNotFound)
	}
	return copyCourse(c), nil
}

func (m *mockCourseRepository) GetAll(ctx context.Context, teacherID string) ([]*secondary.CourseRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []*secondary.CourseRecord
	for _, c := range m.courses {
		if c.TeacherID == teacherID {
			out = append(out, copyCourse(c))
		}
	}
	slices.SortFunc(out, func(a, b *secondary.CourseRecord) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (m *mockCourseRepository) Update(ctx context.Context, course *secondary.CourseRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.courses[course.ID]; !ok {
		return fmt.Errorf("course %s: %w", course.ID, secondary.ErrNotFound)
	}
	m.updates++
	m.courses[course.ID] = copyCourse(course)
	return nil
}

func (m *mockCourseRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.courses[id]; !ok {
		return fmt.Errorf("course %s: %w", id, secondary.ErrNotFound)
	}
	m.deletes++
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("COURSE-%03d", id), nil
}

func copyCourse(c *secondary.CourseRecord) *secondary.CourseRecord {
	out := *c
	out.Students = slices.Clone(c.Students)
	return &out
}

// ============================================================================
// Group set repository mock (also serves group history)
// ============================================================================

var (
	_ secondary.GroupSetRepository     = (*mockGroupSetRepository)(nil)
	_ secondary.GroupHistoryRepository = (*mockGroupSetRepository)(nil)
)

type mockGroupSetRepository struct {
	sets   map[string]*secondary.GroupSetRecord
	nextID int

	createErr  error
	saveErr    error
	historyErr error

	creates      int
	saves        int
	deletes      int
	historyReads int
}

func newMockGroupSetRepository() *mockGroupSetRepository {
	return &mockGroupSetRepository{
		sets:   make(map[string]*secondary.GroupSetRecord),
		nextID: 1,
	}
}

func (m *mockGroupSetRepository) mutations() int {
	return m.creates + m.saves + m.deletes
}

func (m *mockGroupSetRepository) Create(ctx context.Context, gs *secondary.GroupSetRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	m.sets[gs.ID] = copyGroupSet(gs)
	return nil
}

func (m *mockGroupSetRepository) GetByID(ctx context.Context, id string) (*secondary.GroupSetRecord, error) {
	gs, ok := m.sets[id]
	if !ok {
		return nil, fmt.Errorf("group set %s: %w", id, secondary.ErrNotFound)
	}
	return copyGroupSet(gs), nil
}

func (m *mockGroupSetRepository) ListByCourse(ctx context.Context, courseID string) ([]*secondary.GroupSetRecord, error) {
	var out []*secondary.GroupSetRecord
	for _, gs := range m.sets {
		if gs.CourseID == courseID {
			out = append(out, copyGroupSet(gs))
		}
	}
	slices.SortFunc(out, func(a, b *secondary.GroupSetRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (m *mockGroupSetRepository) Save(ctx context.Context, gs *secondary.GroupSetRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.sets[gs.ID]; !ok {
		return fmt.Errorf("group set %s: %w", gs.ID, secondary.ErrNotFound)
	}
	m.saves++
	m.sets[gs.ID] = copyGroupSet(gs)
	return nil
}

func (m *mockGroupSetRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.sets[id]; !ok {
		return fmt.Errorf("group set %s: %w", id, secondary.ErrNotFound)
	}
	m.deletes++
	delete(m.sets, id)
	return nil
}

func (m *mockGroupSetRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("GS-%03d", id), nil
}

func (m *mockGroupSetRepository) GetHistory(ctx context.Context, courseID string) ([]secondary.GroupRecord, error) {
	m.historyReads++
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	var out []secondary.GroupRecord
	for _, gs := range m.sets {
		if gs.CourseID == courseID {
			out = append(out, gs.Groups...)
		}
	}
	return out, nil
}

func copyGroupSet(gs *secondary.GroupSetRecord) *secondary.GroupSetRecord {
	out := *gs
	out.Groups = make([]secondary.GroupRecord, len(gs.Groups))
	for i, g := range gs.Groups {
		out.Groups[i] = secondary.GroupRecord{Members: slices.Clone(g.Members)}
	}
	return &out
}

// ============================================================================
// Authorizer mock
// ============================================================================

var _ secondary.TeacherAuthorizer = (*mockAuthorizer)(nil)

// mockAuthorizer answers from the course repository's ownership data.
type mockAuthorizer struct {
	courses *mockCourseRepository
	err     error
	calls   int
}

func (m *mockAuthorizer) CanManageCourse(ctx context.Context, teacherID, courseID string) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	c, ok := m.courses.courses[courseID]
	return ok && c.TeacherID == teacherID, nil
}

// ============================================================================
// Fixtures
// ============================================================================

const (
	owner    models.TeacherID = "teacher-owner"
	stranger models.TeacherID = "teacher-stranger"
)

type fixture struct {
	courses    *mockCourseRepository
	groupSets  *mockGroupSetRepository
	authorizer *mockAuthorizer
}

func newFixture() *fixture {
	courses := newMockCourseRepository()
	return &fixture{
		courses:    courses,
		groupSets:  newMockGroupSetRepository(),
		authorizer: &mockAuthorizer{courses: courses},
	}
}

// seedCourse stores a course owned by owner with students s01..sNN.
func (f *fixture) seedCourse(id string, n int) []models.Student {
	students := make([]models.Student, n)
	records := make([]secondary.StudentRecord, n)
	for i := range students {
		sid := fmt.Sprintf("s%02d", i+1)
		students[i] = models.Student{ID: models.StudentID(sid), Name: "Student " + sid}
		records[i] = secondary.StudentRecord{ID: sid, Name: "Student " + sid}
	}
	f.courses.courses[id] = &secondary.CourseRecord{
		ID:        id,
		TeacherID: string(owner),
		Name:      "Course " + id,
		Students:  records,
	}
	return students
}

// seedGroupSet stores a recorded group set directly.
func (f *fixture) seedGroupSet(id, courseID string, createdAt time.Time, groups ...models.Group) {
	f.groupSets.sets[id] = groupSetToRecord(models.GroupSet{
		ID:        models.GroupSetID(id),
		Name:      "Set " + id,
		CourseID:  models.CourseID(courseID),
		Groups:    groups,
		CreatedAt: createdAt,
	})
}

func (f *fixture) groupSetService() *GroupSetServiceImpl {
	return NewGroupSetService(f.courses, f.groupSets, f.groupSets, f.authorizer, zap.NewNop()).
		WithPicker(func() assignment.Picker { return assignment.NewSeededPicker(7, 13) }).
		WithClock(func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 123456789, time.UTC) })
}

func (f *fixture) assignmentService() *AssignmentServiceImpl {
	return NewAssignmentService(f.courses, f.groupSets, f.authorizer, zap.NewNop()).
		WithPicker(func() assignment.Picker { return assignment.NewSeededPicker(3, 5) })
}

func (f *fixture) courseService() *CourseServiceImpl {
	return NewCourseService(f.courses, f.authorizer, zap.NewNop())
}

func sortedMemberIDs(groups []models.Group) []models.StudentID {
	var ids []models.StudentID
	for _, g := range groups {
		ids = append(ids, g.IDs()...)
	}
	slices.Sort(ids)
	return ids
}

func idsOfStudents(students []models.Student) []models.StudentID {
	ids := make([]models.StudentID, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	slices.Sort(ids)
	return ids
}
