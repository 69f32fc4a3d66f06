package mongostore

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brian-watkins/groupwork-sub000/internal/ctxutil"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/secondary"
)

// setupTestDB connects to GROUPWORK_TEST_MONGO_URI and returns a throwaway database.
func setupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("GROUPWORK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("GROUPWORK_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	name := "groupwork_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	client, db, err := Connect(ctx, uri, name)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if err := EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestCheckRoster(t *testing.T) {
	ok := []secondary.StudentRecord{{ID: "a"}, {ID: "b"}}
	if err := checkRoster(ok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	dup := []secondary.StudentRecord{{ID: "a"}, {ID: "b"}, {ID: "a"}}
	if err := checkRoster(dup); err == nil {
		t.Error("expected error for duplicate student")
	}
}

func TestGroupSetDoc_RoundTripsMembersInOrder(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 123000000, time.UTC)
	in := []secondary.GroupRecord{
		{Members: []secondary.StudentRecord{{ID: "b", Name: "Bea"}, {ID: "a", Name: "Ari"}}},
		{Members: []secondary.StudentRecord{{ID: "c", Name: "Cy"}}},
	}

	doc := groupSetDoc{ID: "GS-001", CourseID: "COURSE-001", Name: "Week 1", Groups: groupDocs(in), CreatedAt: created}
	got := doc.record()

	if len(got.Groups) != 2 || got.Groups[0].Members[0].ID != "b" || got.Groups[1].Members[0].Name != "Cy" {
		t.Errorf("groups = %+v", got.Groups)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v", got.CreatedAt)
	}
}

func TestStores_Integration(t *testing.T) {
	db := setupTestDB(t)
	activity := NewActivityStore(db)
	courses := NewCourseStore(db, activity)
	sets := NewGroupSetStore(db, activity)
	ctx := ctxutil.WithActorID(context.Background(), "teacher-1")

	courseID, err := courses.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if courseID != "COURSE-001" {
		t.Errorf("expected COURSE-001, got %s", courseID)
	}

	err = courses.Create(ctx, &secondary.CourseRecord{
		ID:        courseID,
		TeacherID: "teacher-1",
		Name:      "Algebra",
		Students:  []secondary.StudentRecord{{ID: "s01", Name: "A"}, {ID: "s02", Name: "B"}, {ID: "s03", Name: "C"}, {ID: "s04", Name: "D"}},
	})
	if err != nil {
		t.Fatalf("Create course failed: %v", err)
	}

	t.Run("ownership", func(t *testing.T) {
		ok, err := courses.CanManageCourse(ctx, "teacher-1", courseID)
		if err != nil || !ok {
			t.Errorf("owner denied: %v %v", ok, err)
		}
		ok, _ = courses.CanManageCourse(ctx, "teacher-2", courseID)
		if ok {
			t.Error("stranger allowed")
		}
		if _, err := courses.Get(ctx, "teacher-2", courseID); !errors.Is(err, secondary.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, name := range []string{"Week 1", "Week 2"} {
		id, err := sets.GetNextID(ctx)
		if err != nil {
			t.Fatalf("GetNextID failed: %v", err)
		}
		err = sets.Create(ctx, &secondary.GroupSetRecord{
			ID:       id,
			CourseID: courseID,
			Name:     name,
			Groups: []secondary.GroupRecord{
				{Members: []secondary.StudentRecord{{ID: "s01"}, {ID: "s02"}}},
				{Members: []secondary.StudentRecord{{ID: "s03"}, {ID: "s04"}}},
			},
			CreatedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		})
		if err != nil {
			t.Fatalf("Create group set failed: %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		list, err := sets.ListByCourse(ctx, courseID)
		if err != nil {
			t.Fatalf("ListByCourse failed: %v", err)
		}
		if len(list) != 2 || list[0].Name != "Week 2" {
			t.Errorf("list = %+v", list)
		}
	})

	t.Run("history", func(t *testing.T) {
		history, err := sets.GetHistory(ctx, courseID)
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}
		if len(history) != 4 {
			t.Errorf("expected 4 groups, got %d", len(history))
		}
	})

	t.Run("activity recorded", func(t *testing.T) {
		entries, err := activity.List(ctx, secondary.ActivityFilters{CourseID: courseID})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(entries) != 3 {
			t.Errorf("expected 3 entries, got %d", len(entries))
		}
	})

	t.Run("course delete cascades", func(t *testing.T) {
		if err := courses.Delete(ctx, courseID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		list, _ := sets.ListByCourse(ctx, courseID)
		if len(list) != 0 {
			t.Errorf("expected group sets removed, got %d", len(list))
		}
	})
}
