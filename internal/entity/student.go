package entity

import "github.com/schedcu/kepler/internal/kerr"

// MandatoryShiftType is a (course, shift-type) pair a student must resolve
// to exactly one shift.
type MandatoryShiftType struct {
	Course Course
	Type   ShiftType
}

// courseShiftKey identifies a (course, shift) pair by identity, not value.
type courseShiftKey struct {
	CourseId string
	Shift    ShiftKey
}

// Student is (number, year, enrollments, previous_schedule). Identity for
// equality and hashing is Number only.
type Student struct {
	Number      string
	Year        int
	enrollments map[string]Course
	Previous    Schedule
}

// NewStudent validates and constructs a Student. Year must be positive,
// enrollments unique by course id, and previous must be valid for the
// resulting student (every course it names matches an enrollment).
func NewStudent(number string, year int, enrollments []Course, previous Schedule) (Student, error) {
	if year <= 0 {
		return Student{}, kerr.NewDomainError(number, "student year must be positive, got %d", year)
	}
	index := make(map[string]Course, len(enrollments))
	for _, c := range enrollments {
		if _, exists := index[c.Id]; exists {
			return Student{}, kerr.NewDomainError(number, "duplicate enrollment in course %q", c.Id)
		}
		index[c.Id] = c
	}
	student := Student{Number: number, Year: year, enrollments: index, Previous: previous}
	if !previous.IsValidFor(student) {
		return Student{}, kerr.NewDomainError(number, "previous schedule is not valid for student %q", number)
	}
	return student, nil
}

// Enrollment returns the course the student is enrolled in under id, if any.
func (s Student) Enrollment(id string) (Course, bool) {
	c, ok := s.enrollments[id]
	return c, ok
}

// Enrollments returns the student's enrolled courses, in no particular
// order.
func (s Student) Enrollments() []Course {
	out := make([]Course, 0, len(s.enrollments))
	for _, c := range s.enrollments {
		out = append(out, c)
	}
	return out
}

// MandatoryShiftTypes returns every (course, shift-type) pair the student
// must resolve to exactly one shift.
func (s Student) MandatoryShiftTypes() []MandatoryShiftType {
	var out []MandatoryShiftType
	for _, c := range s.enrollments {
		for _, t := range c.ShiftTypes() {
			out = append(out, MandatoryShiftType{Course: c, Type: t})
		}
	}
	return out
}

// AssignedShifts is the union of the student's prior-schedule pairs and the
// shifts implicitly forced because their course offers only one shift of
// that type.
func (s Student) AssignedShifts() []ScheduleEntry {
	assigned := make(map[scheduleKey]ScheduleEntry)
	for _, e := range s.Previous.Entries() {
		assigned[scheduleKey{CourseId: e.Course.Id, Type: e.Shift.Type}] = e
	}
	for _, c := range s.enrollments {
		for _, t := range c.ShiftTypes() {
			alternatives := c.ShiftsOfType(t)
			if len(alternatives) != 1 {
				continue
			}
			key := scheduleKey{CourseId: c.Id, Type: t}
			if _, exists := assigned[key]; !exists {
				assigned[key] = ScheduleEntry{Course: c, Shift: alternatives[0]}
			}
		}
	}
	out := make([]ScheduleEntry, 0, len(assigned))
	for _, e := range assigned {
		out = append(out, e)
	}
	return out
}

// UnassignableEnrolledShifts is, for each assigned (course, shift), every
// other shift of that course sharing the same type.
func (s Student) UnassignableEnrolledShifts() []ScheduleEntry {
	var out []ScheduleEntry
	for _, a := range s.AssignedShifts() {
		for _, sh := range a.Course.ShiftsOfType(a.Shift.Type) {
			if sh.Key() != a.Shift.Key() {
				out = append(out, ScheduleEntry{Course: a.Course, Shift: sh})
			}
		}
	}
	return out
}

// PossibleShifts is every (course, shift) across the student's enrollments
// minus UnassignableEnrolledShifts. It contains AssignedShifts plus any
// shift of a type not yet assigned that has more than one alternative.
func (s Student) PossibleShifts() []ScheduleEntry {
	unassignable := make(map[courseShiftKey]bool)
	for _, u := range s.UnassignableEnrolledShifts() {
		unassignable[courseShiftKey{CourseId: u.Course.Id, Shift: u.Shift.Key()}] = true
	}
	var out []ScheduleEntry
	for _, c := range s.enrollments {
		for _, sh := range c.Shifts() {
			if !unassignable[courseShiftKey{CourseId: c.Id, Shift: sh.Key()}] {
				out = append(out, ScheduleEntry{Course: c, Shift: sh})
			}
		}
	}
	return out
}
