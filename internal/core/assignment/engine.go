// Package assignment partitions a course roster into groups of a requested size while
// steering away from pairings recorded in earlier group sets.
// It performs no I/O: the caller supplies the roster and the history.
package assignment

import (
	"cmp"
	"slices"

	"github.com/brian-watkins/groupwork-sub000/internal/core/collaboration"
	"github.com/brian-watkins/groupwork-sub000/internal/core/result"
	"github.com/brian-watkins/groupwork-sub000/internal/models"
)

// MinGroupSize is the smallest group the engine will build.
const MinGroupSize = 2

// MaxGroupSize returns the largest valid size for a roster of n students.
func MaxGroupSize(n int) int {
	return n / 2
}

// ValidateGroupSize returns a failure unless MinGroupSize <= size <= n/2.
// With fewer than four students no size is valid.
func ValidateGroupSize(size, n int) *result.Failure {
	max := MaxGroupSize(n)
	if size < MinGroupSize || size > max {
		return result.InvalidGroupSize(size, MinGroupSize, max)
	}
	return nil
}

// GroupCount returns how many groups a roster of n students is split into.
// A single leftover student joins an existing group; two or more leftovers form one more group.
func GroupCount(n, size int) int {
	base := n / size
	if n%size <= 1 {
		return base
	}
	return base + 1
}

// Capacities spreads n students over count groups as evenly as possible,
// larger shares first.
func Capacities(n, count int) []int {
	if count <= 0 {
		return nil
	}
	caps := make([]int, count)
	base, extra := n/count, n%count
	for i := range caps {
		caps[i] = base
		if i < extra {
			caps[i]++
		}
	}
	return caps
}

// Input is everything one assignment run needs.
type Input struct {
	Students []models.Student
	History  []models.Group
	Size     int
}

// Assign validates the size and partitions the roster.
// An invalid size fails before any partitioning work starts.
func Assign(in Input, picker Picker) result.Result[[]models.Group] {
	if f := ValidateGroupSize(in.Size, len(in.Students)); f != nil {
		return result.Fail[[]models.Group](f)
	}
	return result.Ok(Partition(in.Students, collaboration.Build(in.History), in.Size, picker))
}

// ProcessingOrder sorts students ascending by how many partners they already have.
// Students with the fewest partners are placed first; the most collided go last,
// when fewer slots remain. Ties keep roster order.
func ProcessingOrder(students []models.Student, history collaboration.History) []models.Student {
	ordered := slices.Clone(students)
	slices.SortStableFunc(ordered, func(a, b models.Student) int {
		return cmp.Compare(history.PartnerCount(a.ID), history.PartnerCount(b.ID))
	})
	return ordered
}

// Partition places every student into one of GroupCount(n, size) groups.
// It does not validate size; use Assign for the checked entry point.
func Partition(students []models.Student, history collaboration.History, size int, picker Picker) []models.Group {
	count := GroupCount(len(students), size)
	if count == 0 {
		return []models.Group{}
	}
	caps := Capacities(len(students), count)
	groups := make([]models.Group, count)

	for _, s := range ProcessingOrder(students, history) {
		options := candidates(groups, caps, s.ID, history)
		idx := options[picker.NextIndex(len(options))]
		groups[idx].Add(s)
	}
	return groups
}

// candidates returns the indexes of the groups a student may join, most preferred tier only:
// groups with room and no previous partner, else groups with room, else every group.
func candidates(groups []models.Group, caps []int, id models.StudentID, history collaboration.History) []int {
	var open, fresh []int
	for i, g := range groups {
		if g.Size() >= caps[i] {
			continue
		}
		open = append(open, i)
		if !history.CollidesWith(id, g) {
			fresh = append(fresh, i)
		}
	}
	if len(fresh) > 0 {
		return fresh
	}
	if len(open) > 0 {
		return open
	}
	all := make([]int, len(groups))
	for i := range groups {
		all[i] = i
	}
	return all
}
