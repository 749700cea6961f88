// Package model is a solver-agnostic mixed-integer linear program
// representation: variables, affine expressions, linear constraints and an
// objective. internal/model/builder.go populates one from a
// entity.SchedulingProblem; internal/solver translates one into calls
// against a concrete MILP/CP backend.
package model

import "fmt"

// VarID is an opaque numeric variable identifier. Course ids and student
// numbers may contain arbitrary bytes (NUL, spaces) that are not legal in a
// solver's native variable-name charset, so variables are identified
// numerically here; internal/model/builder.go keeps a side table mapping
// VarID back to the (student, course, shift) it represents.
type VarID int

// VarKind distinguishes a 0/1 decision variable from the non-negative
// overcrowd slack.
type VarKind int

const (
	// Bool is a {0,1} decision variable.
	Bool VarKind = iota
	// NonNegative is an integer variable with lower bound 0, used for the
	// overcrowd slack. UpperBound holds a sound (non-binding) bound a
	// backend needing a bounded domain can use.
	NonNegative
)

// Variable is one MILP variable.
type Variable struct {
	ID   VarID
	Kind VarKind
	// Name is a human-readable debug name; it is never used as the
	// solver's native identifier.
	Name string
	// UpperBound is meaningful only for Kind == NonNegative.
	UpperBound float64
}

// Term is one coefficient·variable pair in an affine expression.
type Term struct {
	Var   VarID
	Coeff float64
}

// AffineExpr is `(coefficient·variable...) + constant`. Terms are kept in
// insertion order for deterministic rendering; Simplify merges duplicate
// variables and drops zero-coefficient terms.
type AffineExpr struct {
	Terms []Term
	Const float64
}

// AddTerm appends a coefficient·variable term.
func (e *AffineExpr) AddTerm(v VarID, coeff float64) {
	e.Terms = append(e.Terms, Term{Var: v, Coeff: coeff})
}

// AddConst adds c to the expression's constant.
func (e *AffineExpr) AddConst(c float64) {
	e.Const += c
}

// Simplify merges duplicate variable terms (summing coefficients, first
// occurrence position kept) and drops terms that net to zero.
func (e AffineExpr) Simplify() AffineExpr {
	order := make([]VarID, 0, len(e.Terms))
	sums := make(map[VarID]float64, len(e.Terms))
	for _, t := range e.Terms {
		if _, seen := sums[t.Var]; !seen {
			order = append(order, t.Var)
		}
		sums[t.Var] += t.Coeff
	}
	out := AffineExpr{Const: e.Const}
	for _, v := range order {
		if sums[v] != 0 {
			out.Terms = append(out.Terms, Term{Var: v, Coeff: sums[v]})
		}
	}
	return out
}

// IsConstant reports whether the expression has no variable terms after
// simplification.
func (e AffineExpr) IsConstant() bool {
	return len(e.Simplify().Terms) == 0
}

// RelOp is a linear constraint's comparison operator: Expr relates to RHS.
type RelOp int

const (
	EQ RelOp = iota
	LE
	GE
)

func (op RelOp) String() string {
	switch op {
	case EQ:
		return "="
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "?"
	}
}

// Constraint is `Expr Op RHS`, e.g. `x1 + x2 = 1`.
type Constraint struct {
	Name string
	Expr AffineExpr
	Op   RelOp
	RHS  float64
}

// Satisfied reports whether a fully-constant constraint's expression
// satisfies its relation to RHS. Only meaningful when Expr.IsConstant().
func (c Constraint) Satisfied() bool {
	lhs := c.Expr.Simplify().Const
	switch c.Op {
	case EQ:
		return lhs == c.RHS
	case LE:
		return lhs <= c.RHS
	case GE:
		return lhs >= c.RHS
	default:
		return false
	}
}

// Model is one solver-agnostic MILP instance.
type Model struct {
	Variables   []Variable
	Constraints []Constraint
	Objective   AffineExpr
}

// AddVariable appends a fresh variable of the given kind with the next VarID
// and returns it.
func (m *Model) AddVariable(kind VarKind, name string) VarID {
	id := VarID(len(m.Variables))
	m.Variables = append(m.Variables, Variable{ID: id, Kind: kind, Name: name})
	return id
}

// AddBoundedVariable appends a fresh variable carrying a sound upper bound
// (used for NonNegative variables, which a bounded-domain backend needs).
func (m *Model) AddBoundedVariable(kind VarKind, name string, upperBound float64) VarID {
	id := VarID(len(m.Variables))
	m.Variables = append(m.Variables, Variable{ID: id, Kind: kind, Name: name, UpperBound: upperBound})
	return id
}

// AddConstraint appends c to the model.
func (m *Model) AddConstraint(c Constraint) {
	m.Constraints = append(m.Constraints, c)
}

func (v VarID) String() string {
	return fmt.Sprintf("v%d", int(v))
}
