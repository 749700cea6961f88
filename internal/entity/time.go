package entity

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/schedcu/kepler/internal/kerr"
)

// ScheduleTime is a time-of-day, valid for 00:00 through 24:00 inclusive
// (24:00 denotes the end of the day and must have minute 0).
type ScheduleTime struct {
	Hour   int
	Minute int
}

var timePattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// NewScheduleTime validates and constructs a ScheduleTime.
func NewScheduleTime(hour, minute int) (ScheduleTime, error) {
	valid := (hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59) || (hour == 24 && minute == 0)
	if !valid {
		return ScheduleTime{}, kerr.NewDomainError("", "invalid time %02d:%02d", hour, minute)
	}
	return ScheduleTime{Hour: hour, Minute: minute}, nil
}

// ParseScheduleTime parses the fixed HH:MM form.
func ParseScheduleTime(s string) (ScheduleTime, error) {
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return ScheduleTime{}, kerr.NewImportError("", "failed to parse time %q", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	t, err := NewScheduleTime(hour, minute)
	if err != nil {
		return ScheduleTime{}, kerr.NewImportError("", "failed to parse time %q", s)
	}
	return t, nil
}

// Before reports whether t strictly precedes other.
func (t ScheduleTime) Before(other ScheduleTime) bool {
	return t.Hour < other.Hour || (t.Hour == other.Hour && t.Minute < other.Minute)
}

// Compare returns -1, 0, or 1 as t is before, equal to, or after other.
func (t ScheduleTime) Compare(other ScheduleTime) int {
	switch {
	case t.Before(other):
		return -1
	case other.Before(t):
		return 1
	default:
		return 0
	}
}

func (t ScheduleTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
