package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
)

func TestCourseAdapter_Create(t *testing.T) {
	var captured primary.CreateCourseRequest
	mock := &mockCourseService{
		createCourseFn: func(ctx context.Context, teacher models.TeacherID, req primary.CreateCourseRequest) (result.Result[models.Course], error) {
			captured = req
			return result.Ok(models.Course{ID: "COURSE-003", Name: req.Name, Students: req.Students}), nil
		},
	}
	var buf bytes.Buffer
	adapter := NewCourseAdapter(mock, &buf)

	course, err := adapter.Create(context.Background(), "t1", "Algebra", []string{"Ada", "Grace"})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if course.ID != "COURSE-003" {
		t.Errorf("expected COURSE-003, got %s", course.ID)
	}
	if len(captured.Students) != 2 || captured.Students[1].Name != "Grace" || captured.Students[0].ID != "" {
		t.Errorf("students = %+v", captured.Students)
	}
	if !strings.Contains(buf.String(), "✓ Created course COURSE-003: Algebra (2 students)") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestCourseAdapter_Create_BusinessFailure(t *testing.T) {
	mock := &mockCourseService{
		createCourseFn: func(ctx context.Context, teacher models.TeacherID, req primary.CreateCourseRequest) (result.Result[models.Course], error) {
			return result.Fail[models.Course](result.InvalidRequest("name")), nil
		},
	}
	var buf bytes.Buffer
	adapter := NewCourseAdapter(mock, &buf)

	_, err := adapter.Create(context.Background(), "t1", "", nil)

	if !result.IsKind(err, result.KindInvalidRequest) {
		t.Errorf("expected invalid_request failure, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %s", buf.String())
	}
}

func TestCourseAdapter_List(t *testing.T) {
	t.Run("with courses", func(t *testing.T) {
		mock := &mockCourseService{
			listCoursesFn: func(ctx context.Context, teacher models.TeacherID) ([]models.Course, error) {
				return []models.Course{
					{ID: "COURSE-001", Name: "Algebra", Students: []models.Student{{ID: "a"}}},
					{ID: "COURSE-002", Name: "Biology"},
				}, nil
			},
		}
		var buf bytes.Buffer
		adapter := NewCourseAdapter(mock, &buf)

		courses, err := adapter.List(context.Background(), "t1")

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(courses) != 2 {
			t.Errorf("expected 2 courses, got %d", len(courses))
		}
		if !strings.Contains(buf.String(), "Biology") {
			t.Errorf("expected output to contain 'Biology', got '%s'", buf.String())
		}
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewCourseAdapter(&mockCourseService{}, &buf)

		_, _ = adapter.List(context.Background(), "t1")

		if !strings.Contains(buf.String(), "No courses found") {
			t.Errorf("expected 'No courses found', got '%s'", buf.String())
		}
	})

	t.Run("infrastructure error", func(t *testing.T) {
		mock := &mockCourseService{
			listCoursesFn: func(ctx context.Context, teacher models.TeacherID) ([]models.Course, error) {
				return nil, errors.New("disk on fire")
			},
		}
		adapter := NewCourseAdapter(mock, &bytes.Buffer{})

		_, err := adapter.List(context.Background(), "t1")

		if err == nil || !strings.Contains(err.Error(), "disk on fire") {
			t.Errorf("expected wrapped error, got %v", err)
		}
	})
}

func TestCourseAdapter_Show(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewCourseAdapter(&mockCourseService{}, &buf)

	course, err := adapter.Show(context.Background(), "t1", "COURSE-001")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if course.Name != "Algebra" {
		t.Errorf("expected Algebra, got %s", course.Name)
	}
	output := buf.String()
	if !strings.Contains(output, "Grace") || !strings.Contains(output, "s1") {
		t.Errorf("expected roster in output, got '%s'", output)
	}
}

func TestCourseAdapter_Rename(t *testing.T) {
	mock := &mockCourseService{}
	var buf bytes.Buffer
	adapter := NewCourseAdapter(mock, &buf)

	err := adapter.Rename(context.Background(), "t1", "COURSE-001", "Algebra II")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastUpdateReq.Name != "Algebra II" || len(mock.lastUpdateReq.Students) != 2 {
		t.Errorf("update request = %+v", mock.lastUpdateReq)
	}
	if !strings.Contains(buf.String(), "Algebra → Algebra II") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestCourseAdapter_AddStudent(t *testing.T) {
	mock := &mockCourseService{}
	var buf bytes.Buffer
	adapter := NewCourseAdapter(mock, &buf)

	course, err := adapter.AddStudent(context.Background(), "t1", "COURSE-001", "Barbara")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if course.StudentCount() != 3 {
		t.Errorf("expected 3 students, got %d", course.StudentCount())
	}
	if !strings.Contains(buf.String(), "✓ Added Barbara (new-id)") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestCourseAdapter_RemoveStudent(t *testing.T) {
	t.Run("removes from roster", func(t *testing.T) {
		mock := &mockCourseService{}
		adapter := NewCourseAdapter(mock, &bytes.Buffer{})

		course, err := adapter.RemoveStudent(context.Background(), "t1", "COURSE-001", "s1")

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if course.HasStudent("s1") || !course.HasStudent("s2") {
			t.Errorf("roster = %+v", course.Students)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		mock := &mockCourseService{}
		adapter := NewCourseAdapter(mock, &bytes.Buffer{})

		_, err := adapter.RemoveStudent(context.Background(), "t1", "COURSE-001", "s9")

		if err == nil {
			t.Fatal("expected error for unknown student")
		}
		if mock.lastUpdateReq.CourseID != "" {
			t.Error("expected no update call")
		}
	})
}

func TestCourseAdapter_Delete(t *testing.T) {
	mock := &mockCourseService{
		deleteCourseFn: func(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) (result.Result[bool], error) {
			return result.Fail[bool](result.Unauthorized(string(teacher), string(courseID))), nil
		},
	}
	var buf bytes.Buffer
	adapter := NewCourseAdapter(mock, &buf)

	err := adapter.Delete(context.Background(), "t2", "COURSE-001")

	if !result.IsKind(err, result.KindUnauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}
	if strings.Contains(buf.String(), "✓") {
		t.Errorf("expected no success line, got %s", buf.String())
	}
}
