package models

import "time"

// Group is an unordered set of students, deduplicated by student id.
// Members keeps insertion order so output is stable, but order carries no meaning.
type Group struct {
	Members []Student `json:"members"`
}

// NewGroup builds a group from the given students, dropping repeated ids.
func NewGroup(students ...Student) Group {
	var g Group
	for _, s := range students {
		g.Add(s)
	}
	return g
}

// Add inserts a student unless a student with the same id is already a member.
// It reports whether the group changed.
func (g *Group) Add(s Student) bool {
	if g.Contains(s.ID) {
		return false
	}
	g.Members = append(g.Members, s)
	return true
}

// Remove drops the student with the given id and reports whether it was present.
func (g *Group) Remove(id StudentID) bool {
	for i, m := range g.Members {
		if m.ID == id {
			g.Members = append(g.Members[:i:i], g.Members[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether a student with the given id is a member.
func (g Group) Contains(id StudentID) bool {
	for _, m := range g.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Size returns the number of members.
func (g Group) Size() int {
	return len(g.Members)
}

// IDs returns the member ids in insertion order.
func (g Group) IDs() []StudentID {
	ids := make([]StudentID, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// GroupSetID is an opaque group set identifier.
type GroupSetID string

// GroupSet is one recorded partition of a course roster.
type GroupSet struct {
	ID        GroupSetID `json:"id"`
	Name      string     `json:"name"`
	CourseID  CourseID   `json:"course_id"`
	Groups    []Group    `json:"groups"`
	CreatedAt time.Time  `json:"created_at"`
}

// StudentCount returns the total number of members across all groups.
func (gs GroupSet) StudentCount() int {
	n := 0
	for _, g := range gs.Groups {
		n += g.Size()
	}
	return n
}

// GroupOf returns the index of the group containing the student, or -1.
func (gs GroupSet) GroupOf(id StudentID) int {
	for i, g := range gs.Groups {
		if g.Contains(id) {
			return i
		}
	}
	return -1
}
