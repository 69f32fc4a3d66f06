package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
)

func TestAssignmentAdapter_Assign_PrintsGroupsAndRepeats(t *testing.T) {
	assignments := &mockAssignmentService{
		repeatPairingsFn: func(ctx context.Context, teacher models.TeacherID, req primary.RepeatPairingsRequest) (result.Result[[]primary.GroupPairings], error) {
			out := []primary.GroupPairings{
				{Group: req.Groups[0], Repeats: map[models.StudentID][]models.Student{
					"s1": {{ID: "s2", Name: "Grace"}},
					"s2": {{ID: "s1", Name: "Ada"}},
				}},
				{Group: req.Groups[1], Repeats: map[models.StudentID][]models.Student{}},
			}
			return result.Ok(out), nil
		},
	}
	groupSets := &mockGroupSetService{}
	var buf bytes.Buffer
	adapter := NewAssignmentAdapter(assignments, groupSets, &buf)

	groups, err := adapter.Assign(context.Background(), "t1", "COURSE-001", 2, "")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("expected 2 groups, got %d", len(groups))
	}
	output := buf.String()
	if !strings.Contains(output, "Group 1: Ada, Grace") {
		t.Errorf("expected first group in output, got '%s'", output)
	}
	if !strings.Contains(output, "Ada has worked with Grace") {
		t.Errorf("expected repeat hint, got '%s'", output)
	}
	if strings.Contains(output, "Alan has worked with") {
		t.Errorf("unexpected repeat hint for second group: '%s'", output)
	}
	if groupSets.createCalls != 0 {
		t.Error("expected nothing recorded without --record")
	}
}

func TestAssignmentAdapter_Assign_Records(t *testing.T) {
	groupSets := &mockGroupSetService{}
	var buf bytes.Buffer
	adapter := NewAssignmentAdapter(&mockAssignmentService{}, groupSets, &buf)

	_, err := adapter.Assign(context.Background(), "t1", "COURSE-001", 2, "Week 3")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if groupSets.lastCreateReq.Name != "Week 3" || len(groupSets.lastCreateReq.Groups) != 2 {
		t.Errorf("create request = %+v", groupSets.lastCreateReq)
	}
	if !strings.Contains(buf.String(), "✓ Recorded group set GS-001: Week 3") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestAssignmentAdapter_Assign_InvalidSize(t *testing.T) {
	assignments := &mockAssignmentService{
		assignGroupsFn: func(ctx context.Context, teacher models.TeacherID, req primary.AssignGroupsRequest) (result.Result[[]models.Group], error) {
			return result.Fail[[]models.Group](result.InvalidGroupSize(req.Size, 2, 5)), nil
		},
	}
	groupSets := &mockGroupSetService{}
	var buf bytes.Buffer
	adapter := NewAssignmentAdapter(assignments, groupSets, &buf)

	_, err := adapter.Assign(context.Background(), "t1", "COURSE-001", 9, "Week 3")

	if !result.IsKind(err, result.KindInvalidGroupSize) {
		t.Errorf("expected invalid_group_size, got %v", err)
	}
	if groupSets.createCalls != 0 {
		t.Error("expected nothing recorded")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %s", buf.String())
	}
}
