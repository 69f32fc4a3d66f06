package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/brian-watkins/groupwork-sub000/internal/models"
	"github.com/brian-watkins/groupwork-sub000/internal/ports/primary"
)

// GroupSetAdapter is a thin adapter that translates CLI operations to GroupSetService calls.
type GroupSetAdapter struct {
	service primary.GroupSetService
	out     io.Writer
}

// NewGroupSetAdapter creates a new GroupSetAdapter with the given service.
func NewGroupSetAdapter(service primary.GroupSetService, out io.Writer) *GroupSetAdapter {
	return &GroupSetAdapter{
		service: service,
		out:     out,
	}
}

// List lists a course's group sets, newest first.
func (a *GroupSetAdapter) List(ctx context.Context, teacher models.TeacherID, courseID models.CourseID) ([]models.GroupSet, error) {
	sets, err := unwrap(a.service.ListGroupSets(ctx, teacher, courseID))
	if err != nil {
		return nil, err
	}

	if len(sets) == 0 {
		fmt.Fprintf(a.out, "No group sets recorded for %s.\n", courseID)
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Record one:")
		fmt.Fprintf(a.out, "  groupwork groups assign %s --size 3 --record \"Week 1\"\n", courseID)
		return sets, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tGROUPS\tSTUDENTS\tCREATED")
	fmt.Fprintln(w, "--\t----\t------\t--------\t-------")
	for _, gs := range sets {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			gs.ID,
			gs.Name,
			len(gs.Groups),
			gs.StudentCount(),
			gs.CreatedAt.Local().Format(time.DateTime),
		)
	}
	w.Flush()

	return sets, nil
}

// Show displays a group set's groups.
func (a *GroupSetAdapter) Show(ctx context.Context, teacher models.TeacherID, id models.GroupSetID) (models.GroupSet, error) {
	gs, err := unwrap(a.service.GetGroupSet(ctx, teacher, id))
	if err != nil {
		return models.GroupSet{}, err
	}

	fmt.Fprintf(a.out, "\nGroup set: %s\n", gs.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", gs.Name)
	fmt.Fprintf(a.out, "Course:  %s\n", gs.CourseID)
	fmt.Fprintf(a.out, "Created: %s\n", gs.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintln(a.out)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	for i, g := range gs.Groups {
		fmt.Fprintf(w, "  Group %d\t\n", i+1)
		for _, m := range g.Members {
			fmt.Fprintf(w, "    %s\t%s\n", m.ID, m.Name)
		}
	}
	w.Flush()
	fmt.Fprintln(a.out)

	return gs, nil
}

// Rename changes a group set's name, keeping its groups.
func (a *GroupSetAdapter) Rename(ctx context.Context, teacher models.TeacherID, id models.GroupSetID, newName string) error {
	gs, err := unwrap(a.service.GetGroupSet(ctx, teacher, id))
	if err != nil {
		return err
	}
	oldName := gs.Name
	gs.Name = newName

	if _, err := unwrap(a.service.SaveGroupSet(ctx, teacher, gs)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Group set %s renamed\n", id)
	fmt.Fprintf(a.out, "  %s → %s\n", oldName, newName)
	return nil
}

// Move moves a student to another group. toGroup is 1-based as shown by Show;
// one past the last group opens a new group.
func (a *GroupSetAdapter) Move(ctx context.Context, teacher models.TeacherID, id models.GroupSetID, studentID models.StudentID, toGroup int) (models.GroupSet, error) {
	if toGroup < 1 {
		return models.GroupSet{}, fmt.Errorf("group number must be at least 1, got %d", toGroup)
	}

	gs, err := unwrap(a.service.MoveMember(ctx, teacher, primary.MoveMemberRequest{
		GroupSetID: id,
		StudentID:  studentID,
		ToGroup:    toGroup - 1,
	}))
	if err != nil {
		return models.GroupSet{}, err
	}

	fmt.Fprintf(a.out, "✓ Moved %s to group %d of %s\n", studentID, gs.GroupOf(studentID)+1, id)
	return gs, nil
}

// Delete removes a recorded group set.
func (a *GroupSetAdapter) Delete(ctx context.Context, teacher models.TeacherID, id models.GroupSetID) error {
	gs, err := unwrap(a.service.GetGroupSet(ctx, teacher, id))
	if err != nil {
		return err
	}

	if _, err := unwrap(a.service.DeleteGroupSet(ctx, teacher, gs)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deleted group set %s: %s\n", gs.ID, gs.Name)
	return nil
}
