package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
)

var repeatColor = color.New(color.FgYellow)

// AssignmentAdapter translates `groups assign` into AssignmentService calls and,
// when asked, records the proposal through GroupSetService.
type AssignmentAdapter struct {
	assignments primary.AssignmentService
	groupSets   primary.GroupSetService
	out         io.Writer
}

// NewAssignmentAdapter creates a new AssignmentAdapter.
func NewAssignmentAdapter(assignments primary.AssignmentService, groupSets primary.GroupSetService, out io.Writer) *AssignmentAdapter {
	return &AssignmentAdapter{
		assignments: assignments,
		groupSets:   groupSets,
		out:         out,
	}
}

// Assign proposes groups of about size for the course and prints them with
// repeat-pairing hints. A non-empty recordAs saves the proposal as a group set.
func (a *AssignmentAdapter) Assign(ctx context.Context, teacher models.TeacherID, courseID models.CourseID, size int, recordAs string) ([]models.Group, error) {
	groups, err := unwrap(a.assignments.AssignGroups(ctx, teacher, primary.AssignGroupsRequest{
		CourseID: courseID,
		Size:     size,
	}))
	if err != nil {
		return nil, err
	}

	pairings, err := unwrap(a.assignments.RepeatPairings(ctx, teacher, primary.RepeatPairingsRequest{
		CourseID: courseID,
		Groups:   groups,
	}))
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "Proposed groups for %s (size %d):\n\n", courseID, size)
	printPairings(a.out, pairings)

	if recordAs == "" {
		return groups, nil
	}

	gs, err := unwrap(a.groupSets.CreateGroupSet(ctx, teacher, primary.CreateGroupSetRequest{
		CourseID: courseID,
		Name:     recordAs,
		Groups:   groups,
	}))
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\n✓ Recorded group set %s: %s\n", gs.ID, gs.Name)
	return groups, nil
}

func printPairings(out io.Writer, pairings []primary.GroupPairings) {
	for i, p := range pairings {
		names := make([]string, len(p.Group.Members))
		for j, m := range p.Group.Members {
			names[j] = m.Name
		}
		fmt.Fprintf(out, "  Group %d: %s\n", i+1, strings.Join(names, ", "))

		if !p.HasRepeat() {
			continue
		}
		for _, m := range p.Group.Members {
			seen := p.Repeats[m.ID]
			if len(seen) == 0 {
				continue
			}
			partners := make([]string, len(seen))
			for k, s := range seen {
				partners[k] = s.Name
			}
			fmt.Fprintf(out, "    %s\n", repeatColor.Sprintf("! %s has worked with %s", m.Name, strings.Join(partners, ", ")))
		}
	}
}
