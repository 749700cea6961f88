package entity

import (
	"strings"

	"github.com/schedcu/kepler/internal/kerr"
)

// Weekday is one of the five teaching days, ordered Monday..Friday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func (d Weekday) String() string {
	if d < Monday || d > Friday {
		return "Weekday(?)"
	}
	return weekdayNames[d]
}

// ParseWeekday parses a weekday name case-insensitively (the input is
// capitalised the way English day names are before matching).
func ParseWeekday(s string) (Weekday, error) {
	if s == "" {
		return 0, kerr.NewImportError("", "invalid day %q", s)
	}
	split := min(1, len(s))
	capitalised := strings.ToUpper(s[:split]) + strings.ToLower(s[split:])
	for i, name := range weekdayNames {
		if name == capitalised {
			return Weekday(i), nil
		}
	}
	return 0, kerr.NewImportError("", "invalid day %q", s)
}
