package weight

import (
	"testing"

	"github.com/schedcu/kepler/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		studentYear, c1Year, c2Year int
		want                       float64
	}{
		{"both courses ahead of student", 1, 2, 2, 1.0},
		{"one course ahead of student", 2, 1, 3, 1.0},
		{"both exactly at student year", 3, 3, 3, 10000.0},
		{"one year behind on one course", 3, 3, 2, 10.0},
		{"two years behind on both courses", 3, 1, 1, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlap(tt.studentYear, tt.c1Year, tt.c2Year)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOvercrowd(t *testing.T) {
	assert.Equal(t, 0.1, Overcrowd(entity.T))
	assert.Equal(t, 0.1, Overcrowd(entity.OT))
	assert.Equal(t, 1.0, Overcrowd(entity.TP))
	assert.Equal(t, 1.0, Overcrowd(entity.PL))
}
