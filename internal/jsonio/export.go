package jsonio

import (
	"encoding/json"
	"io"

	"github.com/schedcu/kepler/internal/entity"
	"github.com/schedcu/kepler/internal/kerr"
)

// ExportSolution renders solution as the flat
// {student_number: [{course, shift_type, shift_number}, ...]} document.
// Order within a student's list is unspecified.
func ExportSolution(solution entity.SchedulingProblemSolution) ([]byte, error) {
	out := toDocument(solution)
	data, err := json.Marshal(out)
	if err != nil {
		return nil, kerr.WrapExportError(err, "failed to marshal solution")
	}
	return data, nil
}

// ExportSolutionTo writes solution to w as a single JSON document followed
// by a trailing newline.
func ExportSolutionTo(w io.Writer, solution entity.SchedulingProblemSolution) error {
	if err := json.NewEncoder(w).Encode(toDocument(solution)); err != nil {
		return kerr.WrapExportError(err, "failed to write solution")
	}
	return nil
}

// SolutionDocument renders solution into the same per-student shift-list
// shape ExportSolution marshals, for a caller (the HTTP API) that embeds it
// inside a larger envelope instead of writing it standalone.
func SolutionDocument(solution entity.SchedulingProblemSolution) map[string][]ScheduleShift {
	return toDocument(solution)
}

func toDocument(solution entity.SchedulingProblemSolution) map[string][]ScheduleShift {
	schedules := solution.Schedules()
	out := make(map[string][]ScheduleShift, len(schedules))
	for number, sched := range schedules {
		entries := sched.Entries()
		list := make([]ScheduleShift, 0, len(entries))
		for _, e := range entries {
			list = append(list, ScheduleShift{
				Course:      e.Course.Id,
				ShiftType:   e.Shift.Type.String(),
				ShiftNumber: e.Shift.Number,
			})
		}
		out[number] = list
	}
	return out
}
