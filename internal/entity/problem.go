package entity

import (
	"reflect"

	"github.com/schedcu/kepler/internal/kerr"
)

// SchedulingProblem is the top-level container enforcing cross-entity
// referential integrity: course ids unique, student numbers unique, and
// every course referenced in a student's enrollments is the same instance
// held in the problem under that id.
type SchedulingProblem struct {
	courses  map[string]Course
	students map[string]Student
}

// NewSchedulingProblem validates and constructs a SchedulingProblem.
func NewSchedulingProblem(courses []Course, students []Student) (SchedulingProblem, error) {
	courseIndex := make(map[string]Course, len(courses))
	for _, c := range courses {
		if _, exists := courseIndex[c.Id]; exists {
			return SchedulingProblem{}, kerr.NewDomainError(c.Id, "duplicate course id %q", c.Id)
		}
		courseIndex[c.Id] = c
	}
	studentIndex := make(map[string]Student, len(students))
	for _, s := range students {
		if _, exists := studentIndex[s.Number]; exists {
			return SchedulingProblem{}, kerr.NewDomainError(s.Number, "duplicate student number %q", s.Number)
		}
		for _, e := range s.Enrollments() {
			canonical, ok := courseIndex[e.Id]
			if !ok || !reflect.DeepEqual(canonical, e) {
				return SchedulingProblem{}, kerr.NewDomainError(s.Number, "student %q enrollment references unknown course %q", s.Number, e.Id)
			}
		}
		studentIndex[s.Number] = s
	}
	return SchedulingProblem{courses: courseIndex, students: studentIndex}, nil
}

// Course returns the course held under id, if any.
func (p SchedulingProblem) Course(id string) (Course, bool) {
	c, ok := p.courses[id]
	return c, ok
}

// Courses returns the problem's courses in no particular order.
func (p SchedulingProblem) Courses() []Course {
	out := make([]Course, 0, len(p.courses))
	for _, c := range p.courses {
		out = append(out, c)
	}
	return out
}

// Student returns the student held under number, if any.
func (p SchedulingProblem) Student(number string) (Student, bool) {
	s, ok := p.students[number]
	return s, ok
}

// Students returns the problem's students in no particular order.
func (p SchedulingProblem) Students() []Student {
	out := make([]Student, 0, len(p.students))
	for _, s := range p.students {
		out = append(out, s)
	}
	return out
}

// PossibleStudentsByShift is, for every (course, shift) in the problem, the
// set of students whose PossibleShifts contains that (course, shift). Every
// shift in every course is present as a key, possibly with an empty set.
// Computed on demand from the problem's immutable state.
func (p SchedulingProblem) PossibleStudentsByShift() map[courseShiftKey][]Student {
	byShift := make(map[courseShiftKey][]Student)
	for _, c := range p.courses {
		for _, sh := range c.Shifts() {
			byShift[courseShiftKey{CourseId: c.Id, Shift: sh.Key()}] = nil
		}
	}
	for _, st := range p.students {
		for _, poss := range st.PossibleShifts() {
			key := courseShiftKey{CourseId: poss.Course.Id, Shift: poss.Shift.Key()}
			byShift[key] = append(byShift[key], st)
		}
	}
	return byShift
}
