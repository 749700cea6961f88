package jsonio

import (
	"encoding/json"
	"io"

	"github.com/schedcu/kepler/internal/entity"
	"github.com/schedcu/kepler/internal/kerr"
)

// ImportProblem decodes data as a Problem JSON document and constructs a
// validated SchedulingProblem. Every key named in the schema is required
// except a student's "schedule", which defaults to empty; unrecognised keys
// are ignored.
func ImportProblem(data []byte) (entity.SchedulingProblem, error) {
	root, err := requireKeys(data, "courses", "students")
	if err != nil {
		return entity.SchedulingProblem{}, err
	}
	courseItems, err := rawArray(root["courses"])
	if err != nil {
		return entity.SchedulingProblem{}, err
	}
	studentItems, err := rawArray(root["students"])
	if err != nil {
		return entity.SchedulingProblem{}, err
	}

	courses := make([]entity.Course, 0, len(courseItems))
	courseIndex := make(map[string]entity.Course, len(courseItems))
	for _, item := range courseItems {
		course, err := buildCourse(item)
		if err != nil {
			return entity.SchedulingProblem{}, err
		}
		courses = append(courses, course)
		courseIndex[course.Id] = course
	}

	students := make([]entity.Student, 0, len(studentItems))
	for _, item := range studentItems {
		student, err := buildStudent(item, courseIndex)
		if err != nil {
			return entity.SchedulingProblem{}, err
		}
		students = append(students, student)
	}

	return entity.NewSchedulingProblem(courses, students)
}

// ImportProblemFrom reads r fully and decodes it as a Problem JSON document.
func ImportProblemFrom(r io.Reader) (entity.SchedulingProblem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return entity.SchedulingProblem{}, kerr.WrapImportError("", err, "failed to read problem document")
	}
	return ImportProblem(data)
}

func buildCourse(raw json.RawMessage) (entity.Course, error) {
	obj, err := requireKeys(raw, "id", "year", "shifts")
	if err != nil {
		return entity.Course{}, err
	}
	var cd courseDTO
	if err := json.Unmarshal(raw, &cd); err != nil {
		return entity.Course{}, kerr.WrapImportError("", err, "malformed course")
	}
	shiftItems, err := rawArray(obj["shifts"])
	if err != nil {
		return entity.Course{}, err
	}
	shifts := make([]entity.Shift, 0, len(shiftItems))
	for _, item := range shiftItems {
		shift, err := buildShift(item)
		if err != nil {
			return entity.Course{}, err
		}
		shifts = append(shifts, shift)
	}
	return entity.NewCourse(cd.Id, cd.Year, shifts)
}

func buildShift(raw json.RawMessage) (entity.Shift, error) {
	obj, err := requireKeys(raw, "type", "number", "capacity", "timeslots")
	if err != nil {
		return entity.Shift{}, err
	}
	var sd shiftDTO
	if err := json.Unmarshal(raw, &sd); err != nil {
		return entity.Shift{}, kerr.WrapImportError("", err, "malformed shift")
	}
	typ, err := entity.ParseShiftType(sd.Type)
	if err != nil {
		return entity.Shift{}, err
	}
	timeslotItems, err := rawArray(obj["timeslots"])
	if err != nil {
		return entity.Shift{}, err
	}
	timeslots := make([]entity.Timeslot, 0, len(timeslotItems))
	for _, item := range timeslotItems {
		ts, err := buildTimeslot(item)
		if err != nil {
			return entity.Shift{}, err
		}
		timeslots = append(timeslots, ts)
	}
	return entity.NewShift(typ, sd.Number, sd.Capacity, timeslots)
}

func buildTimeslot(raw json.RawMessage) (entity.Timeslot, error) {
	if _, err := requireKeys(raw, "day", "start", "end"); err != nil {
		return entity.Timeslot{}, err
	}
	var td timeslotDTO
	if err := json.Unmarshal(raw, &td); err != nil {
		return entity.Timeslot{}, kerr.WrapImportError("", err, "malformed timeslot")
	}
	day, err := entity.ParseWeekday(td.Day)
	if err != nil {
		return entity.Timeslot{}, err
	}
	start, err := entity.ParseScheduleTime(td.Start)
	if err != nil {
		return entity.Timeslot{}, err
	}
	end, err := entity.ParseScheduleTime(td.End)
	if err != nil {
		return entity.Timeslot{}, err
	}
	return entity.NewTimeslot(day, start, end)
}

func buildStudent(raw json.RawMessage, courseIndex map[string]entity.Course) (entity.Student, error) {
	obj, err := requireKeys(raw, "number", "year", "enrollments")
	if err != nil {
		return entity.Student{}, err
	}
	var sd studentDTO
	if err := json.Unmarshal(raw, &sd); err != nil {
		return entity.Student{}, kerr.WrapImportError("", err, "malformed student")
	}

	enrollments := make([]entity.Course, 0, len(sd.Enrollments))
	for _, id := range sd.Enrollments {
		course, ok := courseIndex[id]
		if !ok {
			return entity.Student{}, kerr.NewImportError(sd.Number, "enrollment references unknown course %q", id)
		}
		enrollments = append(enrollments, course)
	}

	var scheduleItems []json.RawMessage
	if raw, ok := obj["schedule"]; ok {
		scheduleItems, err = rawArray(raw)
		if err != nil {
			return entity.Student{}, err
		}
	}
	entries := make([]entity.ScheduleEntry, 0, len(scheduleItems))
	for _, item := range scheduleItems {
		if _, err := requireKeys(item, "course", "shift_type", "shift_number"); err != nil {
			return entity.Student{}, err
		}
		var ss ScheduleShift
		if err := json.Unmarshal(item, &ss); err != nil {
			return entity.Student{}, kerr.WrapImportError(sd.Number, err, "malformed prior schedule entry")
		}
		course, ok := courseIndex[ss.Course]
		if !ok {
			return entity.Student{}, kerr.NewImportError(sd.Number, "prior schedule references unknown course %q", ss.Course)
		}
		typ, err := entity.ParseShiftType(ss.ShiftType)
		if err != nil {
			return entity.Student{}, err
		}
		shift, ok := course.Shift(typ, ss.ShiftNumber)
		if !ok {
			return entity.Student{}, kerr.NewImportError(sd.Number, "prior schedule references unknown shift %s%d in course %q", typ, ss.ShiftNumber, ss.Course)
		}
		entries = append(entries, entity.ScheduleEntry{Course: course, Shift: shift})
	}
	previous, err := entity.NewSchedule(entries)
	if err != nil {
		return entity.Student{}, err
	}

	return entity.NewStudent(sd.Number, sd.Year, enrollments, previous)
}

// requireKeys decodes raw as a JSON object and reports a missing key as an
// ImportError. Extra keys are left in the returned map, untouched — the
// typed decode that follows ignores them.
func requireKeys(raw json.RawMessage, keys ...string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, kerr.WrapImportError("", err, "expected a JSON object")
	}
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return nil, kerr.NewImportError("", "missing required key %q", k)
		}
	}
	return obj, nil
}

// rawArray decodes raw as a JSON array without touching element contents.
func rawArray(raw json.RawMessage) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, kerr.WrapImportError("", err, "expected a JSON array")
	}
	return items, nil
}
