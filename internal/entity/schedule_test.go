package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduleRejectsUnknownShift(t *testing.T) {
	tp1, err := NewShift(TP, 1, 10, nil)
	require.NoError(t, err)
	course, err := NewCourse("CS101", 1, []Shift{tp1})
	require.NoError(t, err)

	other, err := NewShift(TP, 9, 10, nil)
	require.NoError(t, err)

	_, err = NewSchedule([]ScheduleEntry{{Course: course, Shift: other}})
	assert.Error(t, err)
}

func TestNewScheduleRejectsTwoShiftsOfSameType(t *testing.T) {
	tp1, err := NewShift(TP, 1, 10, nil)
	require.NoError(t, err)
	tp2, err := NewShift(TP, 2, 10, nil)
	require.NoError(t, err)
	course, err := NewCourse("CS101", 1, []Shift{tp1, tp2})
	require.NoError(t, err)

	_, err = NewSchedule([]ScheduleEntry{
		{Course: course, Shift: tp1},
		{Course: course, Shift: tp2},
	})
	assert.Error(t, err)
}

func TestScheduleShiftLookup(t *testing.T) {
	tp1, err := NewShift(TP, 1, 10, nil)
	require.NoError(t, err)
	course, err := NewCourse("CS101", 1, []Shift{tp1})
	require.NoError(t, err)

	sched, err := NewSchedule([]ScheduleEntry{{Course: course, Shift: tp1}})
	require.NoError(t, err)

	got, ok := sched.Shift("CS101", TP)
	require.True(t, ok)
	assert.Equal(t, tp1, got)

	_, ok = sched.Shift("CS101", T)
	assert.False(t, ok)
}
