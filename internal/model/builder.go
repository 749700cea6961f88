package model

import (
	"fmt"
	"sort"

	"github.com/schedcu/kepler/internal/entity"
	"github.com/schedcu/kepler/internal/weight"
	"go.uber.org/zap"
)

// ShiftRef identifies a (course, shift) pair by identity, independent of
// which student it is being considered for.
type ShiftRef struct {
	CourseId string
	Shift    entity.ShiftKey
}

// Assignment names the (student, course, shift) triple a decision variable
// or a fixed-to-1 constant represents.
type Assignment struct {
	StudentNumber string
	Course        entity.Course
	Shift         entity.Shift
}

// BuildResult is a built Model plus the side tables needed to decode a
// solver result back into per-student schedules.
type BuildResult struct {
	Model *Model
	// VarAssignments maps every emitted X[...] decision variable back to
	// the (student, course, shift) it represents.
	VarAssignments map[VarID]Assignment
	// FixedOnes are (student, course, shift) triples the variable-fixing
	// analysis pinned to 1; they carry no variable and so never appear in
	// a solver result, but they belong in the final schedule regardless.
	FixedOnes []Assignment
	// StudentNumbers is every student in the problem, sorted, so decode
	// can produce an (possibly empty) schedule even for a student with no
	// fixed-ones and no free variables.
	StudentNumbers []string
}

// boolTerm is either a fixed 0/1 constant or a reference to a fresh binary
// decision variable — the outcome of the variable-fixing analysis for one
// (student, course, shift) triple.
type boolTerm struct {
	isVar    bool
	constVal float64
	v        VarID
}

func (t boolTerm) addTo(e *AffineExpr, coeff float64) {
	if t.isVar {
		e.AddTerm(t.v, coeff)
	} else {
		e.AddConst(coeff * t.constVal)
	}
}

type shiftVar struct {
	course entity.Course
	shift  entity.Shift
	term   boolTerm
}

// Build translates a SchedulingProblem into a solver-agnostic Model: one
// binary variable per possible (student, course, shift) not already fixed
// by the variable-fixing analysis, an enrollment-coverage constraint per
// (student, enrolled course, shift type), an overlap-penalty objective term
// per qualifying pair of a student's possible shifts, and an
// overcrowd-penalty objective term per shift with a non-empty, non-fixed
// candidate pool.
func Build(problem entity.SchedulingProblem, logger *zap.Logger) *BuildResult {
	m := &Model{}
	result := &BuildResult{
		VarAssignments: make(map[VarID]Assignment),
	}

	students := problem.Students()
	sort.Slice(students, func(i, j int) bool { return students[i].Number < students[j].Number })
	for _, st := range students {
		result.StudentNumbers = append(result.StudentNumbers, st.Number)
	}

	perStudent := make(map[string]map[ShiftRef]*shiftVar, len(students))

	for _, st := range students {
		vars := make(map[ShiftRef]*shiftVar)
		perStudent[st.Number] = vars

		for _, e := range sortEntries(st.AssignedShifts()) {
			ref := ShiftRef{CourseId: e.Course.Id, Shift: e.Shift.Key()}
			vars[ref] = &shiftVar{course: e.Course, shift: e.Shift, term: boolTerm{constVal: 1}}
			result.FixedOnes = append(result.FixedOnes, Assignment{StudentNumber: st.Number, Course: e.Course, Shift: e.Shift})
		}
		for _, e := range sortEntries(st.UnassignableEnrolledShifts()) {
			ref := ShiftRef{CourseId: e.Course.Id, Shift: e.Shift.Key()}
			if _, fixed := vars[ref]; fixed {
				continue
			}
			vars[ref] = &shiftVar{course: e.Course, shift: e.Shift, term: boolTerm{constVal: 0}}
		}
		for _, e := range sortEntries(st.PossibleShifts()) {
			ref := ShiftRef{CourseId: e.Course.Id, Shift: e.Shift.Key()}
			if _, fixed := vars[ref]; fixed {
				continue
			}
			name := fmt.Sprintf("%s_%s_%s%d", st.Number, e.Course.Id, e.Shift.Type, e.Shift.Number)
			id := m.AddVariable(Bool, name)
			vars[ref] = &shiftVar{course: e.Course, shift: e.Shift, term: boolTerm{isVar: true, v: id}}
			result.VarAssignments[id] = Assignment{StudentNumber: st.Number, Course: e.Course, Shift: e.Shift}
		}
	}

	for _, st := range students {
		addCoverageConstraints(m, st, perStudent[st.Number])
		addOverlapObjective(m, st, perStudent[st.Number])
	}

	addOvercrowdObjective(m, problem, perStudent)

	if logger != nil {
		logger.Info("model built",
			zap.Int("variables", len(m.Variables)),
			zap.Int("constraints", len(m.Constraints)),
			zap.Int("students", len(students)),
		)
	}

	return result.withModel(m)
}

func (r *BuildResult) withModel(m *Model) *BuildResult {
	r.Model = m
	return r
}

// sortEntries returns entries ordered by (course id, shift type, shift
// number) so variable creation and constraint emission are deterministic.
func sortEntries(entries []entity.ScheduleEntry) []entity.ScheduleEntry {
	out := make([]entity.ScheduleEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Course.Id != b.Course.Id {
			return a.Course.Id < b.Course.Id
		}
		if a.Shift.Type != b.Shift.Type {
			return a.Shift.Type < b.Shift.Type
		}
		return a.Shift.Number < b.Shift.Number
	})
	return out
}

func addCoverageConstraints(m *Model, st entity.Student, vars map[ShiftRef]*shiftVar) {
	mandatory := st.MandatoryShiftTypes()
	sort.Slice(mandatory, func(i, j int) bool {
		if mandatory[i].Course.Id != mandatory[j].Course.Id {
			return mandatory[i].Course.Id < mandatory[j].Course.Id
		}
		return mandatory[i].Type < mandatory[j].Type
	})
	for _, mand := range mandatory {
		expr := AffineExpr{}
		for _, s := range mand.Course.ShiftsOfType(mand.Type) {
			ref := ShiftRef{CourseId: mand.Course.Id, Shift: s.Key()}
			vars[ref].term.addTo(&expr, 1.0)
		}
		m.AddConstraint(Constraint{
			Name: fmt.Sprintf("coverage_%s_%s_%s", st.Number, mand.Course.Id, mand.Type),
			Expr: expr,
			Op:   EQ,
			RHS:  1,
		})
	}
}

func addOverlapObjective(m *Model, st entity.Student, vars map[ShiftRef]*shiftVar) {
	possible := sortEntries(st.PossibleShifts())
	for i := 0; i < len(possible); i++ {
		for j := i + 1; j < len(possible); j++ {
			e1, e2 := possible[i], possible[j]
			if e1.Course.Id == e2.Course.Id && e1.Shift.Type == e2.Shift.Type {
				continue
			}
			if !e1.Shift.Overlaps(e2.Shift) {
				continue
			}
			t1 := vars[ShiftRef{CourseId: e1.Course.Id, Shift: e1.Shift.Key()}].term
			t2 := vars[ShiftRef{CourseId: e2.Course.Id, Shift: e2.Shift.Key()}].term
			w := weight.Overlap(st.Year, e1.Course.Year, e2.Course.Year)

			switch {
			case !t1.isVar && !t2.isVar:
				// Both fixed; a clash here is inevitable or impossible
				// either way, and constants are omitted from the
				// objective — nothing to optimise by adding them.
			case t1.isVar && t2.isVar:
				name := fmt.Sprintf("clash_%s_%s_%s%d_%s_%s%d", st.Number, e1.Course.Id, e1.Shift.Type, e1.Shift.Number, e2.Course.Id, e2.Shift.Type, e2.Shift.Number)
				y := m.AddVariable(Bool, name)
				expr := AffineExpr{}
				expr.AddTerm(y, 1)
				expr.AddTerm(t1.v, -1)
				expr.AddTerm(t2.v, -1)
				m.AddConstraint(Constraint{
					Name: fmt.Sprintf("and_%s", name),
					Expr: expr,
					Op:   GE,
					RHS:  -1,
				})
				m.Objective.AddTerm(y, w)
			default:
				fixed, v := t1, t2
				if t1.isVar {
					fixed, v = t2, t1
				}
				if fixed.constVal == 1 {
					m.Objective.AddTerm(v.v, w)
				}
			}
		}
	}
}

func addOvercrowdObjective(m *Model, problem entity.SchedulingProblem, perStudent map[string]map[ShiftRef]*shiftVar) {
	type bucket struct {
		courseId string
		key      entity.ShiftKey
		students []entity.Student
	}
	var buckets []bucket
	for k, students := range problem.PossibleStudentsByShift() {
		buckets = append(buckets, bucket{courseId: k.CourseId, key: k.Shift, students: students})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].courseId != buckets[j].courseId {
			return buckets[i].courseId < buckets[j].courseId
		}
		if buckets[i].key.Type != buckets[j].key.Type {
			return buckets[i].key.Type < buckets[j].key.Type
		}
		return buckets[i].key.Number < buckets[j].key.Number
	})

	for _, b := range buckets {
		if len(b.students) == 0 {
			continue
		}
		course, _ := problem.Course(b.courseId)
		shift, _ := course.Shift(b.key.Type, b.key.Number)
		ref := ShiftRef{CourseId: b.courseId, Shift: b.key}

		sort.Slice(b.students, func(i, j int) bool { return b.students[i].Number < b.students[j].Number })

		fixedOnes := 0
		var freeVars []VarID
		for _, st := range b.students {
			term := perStudent[st.Number][ref].term
			if term.isVar {
				freeVars = append(freeVars, term.v)
			} else if term.constVal == 1 {
				fixedOnes++
			}
		}
		if len(freeVars) == 0 {
			continue
		}
		capPrime := float64(shift.Capacity - fixedOnes)
		name := fmt.Sprintf("overcrowd_%s_%s", b.courseId, shift.Name())
		// o >= sum(freeVars) - capPrime, and sum(freeVars) is at most
		// len(freeVars), so that's a sound upper bound on o regardless of
		// how negative capPrime gets (a large fixed population can push it
		// well past len(freeVars) on its own).
		upperBound := float64(len(freeVars)) - capPrime
		if upperBound < 0 {
			upperBound = 0
		}
		o := m.AddBoundedVariable(NonNegative, name, upperBound)
		expr := AffineExpr{}
		expr.AddTerm(o, 1)
		for _, v := range freeVars {
			expr.AddTerm(v, -1)
		}
		m.AddConstraint(Constraint{
			Name: fmt.Sprintf("cap_%s", name),
			Expr: expr,
			Op:   GE,
			RHS:  -capPrime,
		})
		w := weight.Overcrowd(shift.Type)
		m.Objective.AddTerm(o, w)
	}
}
