// Package weight implements the objective's pure weighting policy: how
// expensive a timetable clash is given the two courses involved, and how
// expensive an over-capacity seat is given the shift type.
package weight

import "github.com/schedcu/kepler/internal/entity"

// Overlap computes w_ov(student, c1, c2): the cost of letting shifts of c1
// and c2 clash in studentYear's schedule.
//
// Let δᵢ = studentYear − cᵢYear.
//   - δ1<0 or δ2<0  → 1.0     (one course is ahead of the student's year)
//   - δ1+δ2 == 0    → 10000.0 (both courses are exactly at the student's year)
//   - δ1+δ2 == 1    → 10.0    (exactly one course is one year behind)
//   - otherwise     → 1.0
func Overlap(studentYear, c1Year, c2Year int) float64 {
	d1 := studentYear - c1Year
	d2 := studentYear - c2Year
	switch {
	case d1 < 0 || d2 < 0:
		return 1.0
	case d1+d2 == 0:
		return 10000.0
	case d1+d2 == 1:
		return 10.0
	default:
		return 1.0
	}
}

// Overcrowd computes w_oc(shift): lecture-style shifts tolerate overflow
// more cheaply than small-group shifts.
func Overcrowd(shiftType entity.ShiftType) float64 {
	if shiftType == entity.T || shiftType == entity.OT {
		return 0.1
	}
	return 1.0
}
