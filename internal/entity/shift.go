package entity

import (
	"fmt"
	"strings"

	"github.com/schedcu/kepler/internal/kerr"
)

// ShiftType is one of the four teaching modes, ordered for deterministic
// tie-breaking: T < TP < PL < OT.
type ShiftType int

const (
	T ShiftType = iota
	TP
	PL
	OT
)

var shiftTypeNames = [...]string{"T", "TP", "PL", "OT"}

func (t ShiftType) String() string {
	if t < T || t > OT {
		return "ShiftType(?)"
	}
	return shiftTypeNames[t]
}

// ParseShiftType uppercases s and matches it against the known types.
func ParseShiftType(s string) (ShiftType, error) {
	upper := strings.ToUpper(s)
	for i, name := range shiftTypeNames {
		if name == upper {
			return ShiftType(i), nil
		}
	}
	return 0, kerr.NewImportError("", "invalid shift type %q", s)
}

// Shift is a typed, numbered, capacitated set of non-overlapping timeslots.
// Identity for equality and hashing is the pair (Type, Number); Capacity and
// Timeslots are not part of identity.
type Shift struct {
	Type      ShiftType
	Number    int
	Capacity  int
	Timeslots []Timeslot
}

// ShiftKey is the identity of a Shift, usable as a map key.
type ShiftKey struct {
	Type   ShiftType
	Number int
}

// Key returns s's identity.
func (s Shift) Key() ShiftKey {
	return ShiftKey{Type: s.Type, Number: s.Number}
}

// NewShift validates and constructs a Shift. Number and Capacity must be
// positive and no two timeslots may overlap each other.
func NewShift(typ ShiftType, number, capacity int, timeslots []Timeslot) (Shift, error) {
	name := fmt.Sprintf("%s%d", typ, number)
	if number <= 0 {
		return Shift{}, kerr.NewDomainError(name, "shift number must be positive, got %d", number)
	}
	if capacity <= 0 {
		return Shift{}, kerr.NewDomainError(name, "shift capacity must be positive, got %d", capacity)
	}
	for i := 0; i < len(timeslots); i++ {
		for j := i + 1; j < len(timeslots); j++ {
			if timeslots[i].overlaps(timeslots[j]) {
				return Shift{}, kerr.NewDomainError(name, "shift has overlapping timeslots")
			}
		}
	}
	cp := make([]Timeslot, len(timeslots))
	copy(cp, timeslots)
	return Shift{Type: typ, Number: number, Capacity: capacity, Timeslots: cp}, nil
}

// Name is the shift's display name, e.g. "TP2".
func (s Shift) Name() string {
	return fmt.Sprintf("%s%d", s.Type, s.Number)
}

// Overlaps reports whether any of s's timeslots overlaps any of other's.
// Shifts with no timeslots overlap nothing, not even themselves.
func (s Shift) Overlaps(other Shift) bool {
	for _, a := range s.Timeslots {
		for _, b := range other.Timeslots {
			if a.overlaps(b) {
				return true
			}
		}
	}
	return false
}

// OverlapsTimeslot reports whether any of s's timeslots overlaps ts.
func (s Shift) OverlapsTimeslot(ts Timeslot) bool {
	for _, a := range s.Timeslots {
		if a.overlaps(ts) {
			return true
		}
	}
	return false
}
