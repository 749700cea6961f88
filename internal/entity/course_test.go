package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourseRejectsDuplicateShifts(t *testing.T) {
	s1, err := NewShift(TP, 1, 10, nil)
	require.NoError(t, err)
	s2, err := NewShift(TP, 1, 20, nil)
	require.NoError(t, err)

	_, err = NewCourse("CS101", 1, []Shift{s1, s2})
	assert.Error(t, err)

	_, err = NewCourse("CS101", 0, nil)
	assert.Error(t, err, "year must be positive")
}

func TestCourseShiftLookupAndOrdering(t *testing.T) {
	t2, err := NewShift(T, 2, 10, nil)
	require.NoError(t, err)
	t1, err := NewShift(T, 1, 10, nil)
	require.NoError(t, err)
	tp1, err := NewShift(TP, 1, 10, nil)
	require.NoError(t, err)

	c, err := NewCourse("CS101", 1, []Shift{t2, t1, tp1})
	require.NoError(t, err)

	got, ok := c.Shift(T, 1)
	require.True(t, ok)
	assert.Equal(t, t1, got)

	_, ok = c.Shift(PL, 1)
	assert.False(t, ok)

	assert.Equal(t, []ShiftType{T, TP}, c.ShiftTypes())
	assert.Equal(t, []Shift{t1, t2}, c.ShiftsOfType(T))
	assert.Equal(t, []Shift{t1, t2, tp1}, c.Shifts())
}
