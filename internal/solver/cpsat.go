package solver

import (
	"context"
	"math"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"github.com/schedcu/kepler/internal/kerr"
	"github.com/schedcu/kepler/internal/model"
)

// objectiveScale turns the weight policy's fractional weights (1.0, 10.0,
// 10000.0, 0.1) into exact integers, since cp-sat's objective is integral.
// 0.1 is the finest increment in use, so scaling by 10 is exact for every
// weight the policy produces.
const objectiveScale = 10

// CPSat is the Backend implementation wired to Google OR-Tools' CP-SAT
// solver, the Go ecosystem's MILP-equivalent for this kind of 0/1
// shift-assignment program (the Python original used PuLP+COIN_CMD, which
// has no Go binding in this stack).
type CPSat struct{}

// NewCPSat constructs a CPSat backend.
func NewCPSat() *CPSat {
	return &CPSat{}
}

// Solve builds a cp-sat model mirroring m, solves it, and reports the
// result. The submitted Model is read-only; Solve may be called more than
// once on the same Model.
func (CPSat) Solve(ctx context.Context, m *model.Model, cfg Config) (*Result, error) {
	cfg = cfg.WithDefaults()

	builder := cpmodel.NewCpModelBuilder()

	boolVars := make(map[model.VarID]cpmodel.BoolVar, len(m.Variables))
	intVars := make(map[model.VarID]cpmodel.IntVar)
	for _, v := range m.Variables {
		switch v.Kind {
		case model.Bool:
			boolVars[v.ID] = builder.NewBoolVar().WithName(v.Name)
		case model.NonNegative:
			intVars[v.ID] = builder.NewIntVar(0, int64(v.UpperBound)).WithName(v.Name)
		}
	}

	linearArg := func(id model.VarID) cpmodel.LinearArgument {
		if v, ok := boolVars[id]; ok {
			return v
		}
		return intVars[id]
	}

	buildExpr := func(e model.AffineExpr) *cpmodel.LinearExpr {
		expr := cpmodel.NewLinearExpr()
		for _, term := range e.Terms {
			expr.AddTerm(linearArg(term.Var), int64(term.Coeff))
		}
		if e.Const != 0 {
			expr.AddTerm(cpmodel.NewConstant(int64(e.Const)), 1)
		}
		return expr
	}

	for _, c := range m.Constraints {
		if c.Expr.IsConstant() {
			if !c.Satisfied() {
				return nil, kerr.NewModelError("constraint %q is violated by fixed input alone", c.Name)
			}
			continue
		}
		lhs := buildExpr(c.Expr)
		rhs := cpmodel.NewConstant(int64(c.RHS))
		switch c.Op {
		case model.EQ:
			builder.AddEquality(lhs, rhs)
		case model.LE:
			builder.AddLessOrEqual(lhs, rhs)
		case model.GE:
			builder.AddGreaterOrEqual(lhs, rhs)
		}
	}

	objective := cpmodel.NewLinearExpr()
	for _, term := range m.Objective.Terms {
		scaled := int64(math.Round(term.Coeff * objectiveScale))
		objective.AddTerm(linearArg(term.Var), scaled)
	}
	builder.Minimize(objective)

	cpModel, err := builder.Model()
	if err != nil {
		return nil, kerr.WrapModelError(err, "failed to instantiate cp-sat model")
	}

	maxTime := cfg.TimeLimit.Seconds()
	params := &sppb.SatParameters{MaxTimeInSeconds: &maxTime}
	response, err := cpmodel.SolveCpModelWithParameters(cpModel, params)
	if err != nil {
		return nil, kerr.WrapModelError(err, "cp-sat solve failed")
	}

	status := response.GetStatus().String()
	result := &Result{
		Status:  status,
		Optimal: status == "OPTIMAL",
		Values:  make(map[model.VarID]float64, len(m.Variables)),
	}
	for id, v := range boolVars {
		if cpmodel.SolutionBooleanValue(response, v) {
			result.Values[id] = 1
		}
	}
	for id, v := range intVars {
		result.Values[id] = float64(cpmodel.SolutionIntegerValue(response, v))
	}
	return result, nil
}
