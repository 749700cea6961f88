package jsonio

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/schedcu/kepler/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSingleShiftProblem(t *testing.T) (entity.SchedulingProblem, entity.Shift) {
	t.Helper()
	t1, err := entity.NewShift(entity.T, 1, 30, nil)
	require.NoError(t, err)
	course, err := entity.NewCourse("CS101", 1, []entity.Shift{t1})
	require.NoError(t, err)
	student, err := entity.NewStudent("s1", 1, []entity.Course{course}, entity.Schedule{})
	require.NoError(t, err)
	problem, err := entity.NewSchedulingProblem([]entity.Course{course}, []entity.Student{student})
	require.NoError(t, err)
	return problem, t1
}

func TestExportSolutionFlatShape(t *testing.T) {
	problem, t1 := buildSingleShiftProblem(t)
	course, _ := problem.Course("CS101")
	sched, err := entity.NewSchedule([]entity.ScheduleEntry{{Course: course, Shift: t1}})
	require.NoError(t, err)
	solution, err := entity.NewSchedulingProblemSolution(problem, map[string]entity.Schedule{"s1": sched})
	require.NoError(t, err)

	data, err := ExportSolution(solution)
	require.NoError(t, err)

	var decoded map[string][]ScheduleShift
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "s1")
	require.Len(t, decoded["s1"], 1)
	assert.Equal(t, "CS101", decoded["s1"][0].Course)
	assert.Equal(t, "T", decoded["s1"][0].ShiftType)
	assert.Equal(t, 1, decoded["s1"][0].ShiftNumber)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	_, hasEnvelope := raw["schedules"]
	assert.False(t, hasEnvelope, "CLI export must not wrap in a schedules envelope")
}

func TestExportSolutionToWritesTrailingNewline(t *testing.T) {
	problem, t1 := buildSingleShiftProblem(t)
	course, _ := problem.Course("CS101")
	sched, err := entity.NewSchedule([]entity.ScheduleEntry{{Course: course, Shift: t1}})
	require.NoError(t, err)
	solution, err := entity.NewSchedulingProblemSolution(problem, map[string]entity.Schedule{"s1": sched})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportSolutionTo(&buf, solution))
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestImportProblemTwiceYieldsSameIds(t *testing.T) {
	problem, err := ImportProblem([]byte(validProblem))
	require.NoError(t, err)

	reimported, err := ImportProblem([]byte(validProblem))
	require.NoError(t, err)

	assert.ElementsMatch(t, courseIds(problem), courseIds(reimported))
	assert.ElementsMatch(t, studentNumbers(problem), studentNumbers(reimported))
}

func courseIds(p entity.SchedulingProblem) []string {
	var out []string
	for _, c := range p.Courses() {
		out = append(out, c.Id)
	}
	return out
}

func studentNumbers(p entity.SchedulingProblem) []string {
	var out []string
	for _, s := range p.Students() {
		out = append(out, s.Number)
	}
	return out
}
