package groupset

import (
	"fmt"

	"github.com/brian-watkins/groupwork-sub000/internal/models"
)

// GenerateGroupSetID generates a group set ID from the current max number.
// The format is GS-XXX where XXX is a zero-padded 3-digit number.
func GenerateGroupSetID(currentMax int) string {
	return fmt.Sprintf("GS-%03d", currentMax+1)
}

// Compact drops empty groups and returns copies of the rest.
func Compact(groups []models.Group) []models.Group {
	out := make([]models.Group, 0, len(groups))
	for _, g := range groups {
		if g.Size() == 0 {
			continue
		}
		out = append(out, models.NewGroup(g.Members...))
	}
	return out
}

// MoveMember returns a copy of groups with the student moved into groups[to].
// A target equal to len(groups) opens a new group. Groups left empty are dropped.
// Callers check CanMoveMember first.
func MoveMember(groups []models.Group, id models.StudentID, to int) []models.Group {
	moved := make([]models.Group, len(groups), len(groups)+1)
	var student models.Student
	for i, g := range groups {
		moved[i] = models.NewGroup(g.Members...)
		for _, m := range g.Members {
			if m.ID == id {
				student = m
			}
		}
	}
	if to == len(moved) {
		moved = append(moved, models.Group{})
	}
	for i := range moved {
		if i != to {
			moved[i].Remove(id)
		}
	}
	moved[to].Add(student)
	return Compact(moved)
}
