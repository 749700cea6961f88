package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input string
		want  Weekday
	}{
		{"Monday", Monday},
		{"tuesday", Tuesday},
		{"WEDNESDAY", Wednesday},
		{"thursDAY", Thursday},
		{"Friday", Friday},
	}
	for _, tt := range tests {
		got, err := ParseWeekday(tt.input)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseWeekday("Saturday")
	assert.Error(t, err)

	_, err = ParseWeekday("")
	assert.Error(t, err)
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Friday", Friday.String())
}
