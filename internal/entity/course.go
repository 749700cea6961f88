package entity

import (
	"sort"

	"github.com/schedcu/kepler/internal/kerr"
)

// Course groups shifts by type, identified by a stable id. Identity for
// equality and hashing is Id only.
type Course struct {
	Id     string
	Year   int
	shifts map[ShiftKey]Shift
}

// NewCourse validates and constructs a Course. Year must be positive and no
// two shifts may share a (type, number) pair.
func NewCourse(id string, year int, shifts []Shift) (Course, error) {
	if year <= 0 {
		return Course{}, kerr.NewDomainError(id, "course year must be positive, got %d", year)
	}
	index := make(map[ShiftKey]Shift, len(shifts))
	for _, s := range shifts {
		key := s.Key()
		if _, exists := index[key]; exists {
			return Course{}, kerr.NewDomainError(id, "duplicate shift %s in course", s.Name())
		}
		index[key] = s
	}
	return Course{Id: id, Year: year, shifts: index}, nil
}

// Shift looks up a shift of the course by (type, number) in O(1).
func (c Course) Shift(typ ShiftType, number int) (Shift, bool) {
	s, ok := c.shifts[ShiftKey{Type: typ, Number: number}]
	return s, ok
}

// ShiftTypes returns the distinct shift types offered by the course, in
// declaration order (T, TP, PL, OT).
func (c Course) ShiftTypes() []ShiftType {
	seen := make(map[ShiftType]bool)
	for key := range c.shifts {
		seen[key.Type] = true
	}
	types := make([]ShiftType, 0, len(seen))
	for t := T; t <= OT; t++ {
		if seen[t] {
			types = append(types, t)
		}
	}
	return types
}

// ShiftsOfType returns the course's shifts of the given type, ordered by
// number ascending.
func (c Course) ShiftsOfType(typ ShiftType) []Shift {
	var out []Shift
	for key, s := range c.shifts {
		if key.Type == typ {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Shifts returns every shift in the course in canonical order: type order
// then number order, matching the order needed for deterministic variable
// naming.
func (c Course) Shifts() []Shift {
	var out []Shift
	for t := T; t <= OT; t++ {
		out = append(out, c.ShiftsOfType(t)...)
	}
	return out
}
