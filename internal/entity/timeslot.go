package entity

import "github.com/schedcu/kepler/internal/kerr"

// Timeslot is a recurring weekly interval [Start, End) on a single day.
type Timeslot struct {
	Day   Weekday
	Start ScheduleTime
	End   ScheduleTime
}

// NewTimeslot validates and constructs a Timeslot; Start must precede End.
func NewTimeslot(day Weekday, start, end ScheduleTime) (Timeslot, error) {
	if !start.Before(end) {
		return Timeslot{}, kerr.NewDomainError("", "timeslot start %s not before end %s", start, end)
	}
	return Timeslot{Day: day, Start: start, End: end}, nil
}

// overlaps reports whether two timeslots share a day and their half-open
// intervals intersect. Symmetric and reflexive on any single slot.
func (t Timeslot) overlaps(other Timeslot) bool {
	return t.Day == other.Day && t.Start.Before(other.End) && other.Start.Before(t.End)
}

// Overlaps reports whether t and other share any instant in the week.
func (t Timeslot) Overlaps(other Timeslot) bool {
	return t.overlaps(other)
}
