// Package collaboration answers "who has already worked with whom" from the groups
// recorded for a course. Everything here is pure: callers fetch the history first.
package collaboration

import "github.com/brian-watkins/groupwork-sub000/internal/models"

type studentSet map[models.StudentID]struct{}

// History maps each student to the distinct students they have shared any recorded group with.
type History struct {
	partners map[models.StudentID]studentSet
}

// Build folds recorded groups into a History. A student is never their own partner.
func Build(groups []models.Group) History {
	h := History{partners: make(map[models.StudentID]studentSet)}
	for _, g := range groups {
		for _, a := range g.Members {
			for _, b := range g.Members {
				if a.ID == b.ID {
					continue
				}
				set, ok := h.partners[a.ID]
				if !ok {
					set = make(studentSet)
					h.partners[a.ID] = set
				}
				set[b.ID] = struct{}{}
			}
		}
	}
	return h
}

// PartnerCount returns how many distinct students id has worked with.
func (h History) PartnerCount(id models.StudentID) int {
	return len(h.partners[id])
}

// WorkedTogether reports whether a and b have shared a recorded group.
func (h History) WorkedTogether(a, b models.StudentID) bool {
	_, ok := h.partners[a][b]
	return ok
}

// CollidesWith reports whether any member of g has previously worked with id.
func (h History) CollidesWith(id models.StudentID, g models.Group) bool {
	set := h.partners[id]
	if len(set) == 0 {
		return false
	}
	for _, m := range g.Members {
		if _, ok := set[m.ID]; ok {
			return true
		}
	}
	return false
}

// RepeatPairings lists, for every member of g, the other members of g they have
// already worked with. Members without repeats map to an empty, non-nil slice.
func (h History) RepeatPairings(g models.Group) map[models.StudentID][]models.Student {
	out := make(map[models.StudentID][]models.Student, g.Size())
	for _, m := range g.Members {
		repeats := []models.Student{}
		for _, other := range g.Members {
			if other.ID != m.ID && h.WorkedTogether(m.ID, other.ID) {
				repeats = append(repeats, other)
			}
		}
		out[m.ID] = repeats
	}
	return out
}

// HasRepeat reports whether any two members of g have worked together before.
func (h History) HasRepeat(g models.Group) bool {
	for i, a := range g.Members {
		for _, b := range g.Members[i+1:] {
			if h.WorkedTogether(a.ID, b.ID) {
				return true
			}
		}
	}
	return false
}

// RepeatPairings is the one-shot form of History.RepeatPairings.
func RepeatPairings(history []models.Group, g models.Group) map[models.StudentID][]models.Student {
	return Build(history).RepeatPairings(g)
}
