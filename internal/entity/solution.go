package entity

import "github.com/schedcu/kepler/internal/kerr"

// SchedulingProblemSolution is a validated mapping from student number to
// final Schedule, covering every student in the originating problem.
type SchedulingProblemSolution struct {
	Problem        SchedulingProblem
	finalSchedules map[string]Schedule
}

// NewSchedulingProblemSolution validates and constructs a
// SchedulingProblemSolution. finalSchedules must have exactly one entry per
// student in problem, and each schedule must be both valid and complete for
// its student.
func NewSchedulingProblemSolution(problem SchedulingProblem, finalSchedules map[string]Schedule) (SchedulingProblemSolution, error) {
	students := problem.Students()
	if len(finalSchedules) != len(students) {
		return SchedulingProblemSolution{}, kerr.NewInternalError("solution covers %d students, problem has %d", len(finalSchedules), len(students))
	}
	for _, st := range students {
		sched, ok := finalSchedules[st.Number]
		if !ok {
			return SchedulingProblemSolution{}, kerr.NewInternalError("no schedule produced for student %q", st.Number)
		}
		if !sched.IsValidFor(st) {
			return SchedulingProblemSolution{}, kerr.NewInternalError("schedule for student %q is not valid for that student", st.Number)
		}
		if !sched.IsCompleteFor(st) {
			return SchedulingProblemSolution{}, kerr.NewInternalError("schedule for student %q is not complete", st.Number)
		}
	}
	return SchedulingProblemSolution{Problem: problem, finalSchedules: finalSchedules}, nil
}

// Schedule returns the final schedule for studentNumber, if any.
func (s SchedulingProblemSolution) Schedule(studentNumber string) (Schedule, bool) {
	sched, ok := s.finalSchedules[studentNumber]
	return sched, ok
}

// Schedules returns the solution's student-number-to-schedule mapping.
func (s SchedulingProblemSolution) Schedules() map[string]Schedule {
	return s.finalSchedules
}
