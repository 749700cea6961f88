package entity

import (
	"reflect"

	"github.com/schedcu/kepler/internal/kerr"
)

// ScheduleEntry is one (course, shift) selection within a Schedule.
type ScheduleEntry struct {
	Course Course
	Shift  Shift
}

// scheduleKey indexes a Schedule by (course id, shift type).
type scheduleKey struct {
	CourseId string
	Type     ShiftType
}

// Schedule is a validated, immutable set of (course, shift) pairs with at
// most one shift per (course id, shift type).
type Schedule struct {
	entries map[scheduleKey]ScheduleEntry
}

// NewSchedule validates and constructs a Schedule. Each shift must be the
// same instance stored in its course under (type, number); at most one
// shift per (course, shift-type); no two distinct course objects share an
// id within the schedule.
func NewSchedule(entries []ScheduleEntry) (Schedule, error) {
	index := make(map[scheduleKey]ScheduleEntry, len(entries))
	courses := make(map[string]Course, len(entries))
	for _, e := range entries {
		if existing, ok := courses[e.Course.Id]; ok {
			if !reflect.DeepEqual(existing, e.Course) {
				return Schedule{}, kerr.NewDomainError(e.Course.Id, "schedule references two different courses with id %q", e.Course.Id)
			}
		} else {
			courses[e.Course.Id] = e.Course
		}
		stored, ok := e.Course.Shift(e.Shift.Type, e.Shift.Number)
		if !ok || !reflect.DeepEqual(stored, e.Shift) {
			return Schedule{}, kerr.NewDomainError(e.Course.Id, "shift %s is not part of course %q", e.Shift.Name(), e.Course.Id)
		}
		key := scheduleKey{CourseId: e.Course.Id, Type: e.Shift.Type}
		if _, exists := index[key]; exists {
			return Schedule{}, kerr.NewDomainError(e.Course.Id, "more than one %s shift scheduled for course %q", e.Shift.Type, e.Course.Id)
		}
		index[key] = e
	}
	return Schedule{entries: index}, nil
}

// Entries returns the schedule's (course, shift) pairs in no particular
// order.
func (s Schedule) Entries() []ScheduleEntry {
	out := make([]ScheduleEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

// Shift returns the shift scheduled for (courseId, typ), if any.
func (s Schedule) Shift(courseId string, typ ShiftType) (Shift, bool) {
	e, ok := s.entries[scheduleKey{CourseId: courseId, Type: typ}]
	return e.Shift, ok
}

// IsValidFor reports whether every course named in the schedule is the same
// course the student is enrolled in under that id.
func (s Schedule) IsValidFor(student Student) bool {
	for _, e := range s.entries {
		enrolled, ok := student.Enrollment(e.Course.Id)
		if !ok || !reflect.DeepEqual(enrolled, e.Course) {
			return false
		}
	}
	return true
}

// IsCompleteFor reports whether the schedule's (course id, shift type) keys
// equal the student's mandatory shift-type set.
func (s Schedule) IsCompleteFor(student Student) bool {
	mandatory := student.MandatoryShiftTypes()
	if len(mandatory) != len(s.entries) {
		return false
	}
	for _, m := range mandatory {
		if _, ok := s.entries[scheduleKey{CourseId: m.Course.Id, Type: m.Type}]; !ok {
			return false
		}
	}
	return true
}
