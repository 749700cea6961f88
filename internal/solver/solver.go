// Package solver adapts a solver-agnostic model.Model onto a concrete
// MILP/CP backend and decodes its result back into entity.SchedulingProblemSolution.
package solver

import (
	"context"
	"time"

	"github.com/schedcu/kepler/internal/model"
)

// DefaultTimeLimit matches the Python original's COIN_CMD configuration
// (scheduler/config.py: timeLimit=300).
const DefaultTimeLimit = 300 * time.Second

// Config configures one solve invocation. The source exposes a
// process-wide solver handle; here it is an explicit value passed to the
// adapter so tests can substitute a short time limit or a fake backend.
type Config struct {
	TimeLimit time.Duration
}

// WithDefaults fills unset fields with the package defaults.
func (c Config) WithDefaults() Config {
	if c.TimeLimit <= 0 {
		c.TimeLimit = DefaultTimeLimit
	}
	return c
}

// Result is one backend's raw solve outcome: whether it terminated
// optimally, its native status string (folded into a ModelError message on
// failure), and the value the backend assigned to each decision variable.
type Result struct {
	Optimal bool
	Status  string
	// Values holds a 0/1 value for each Bool variable in the submitted
	// model, and the overcrowd slack's value for each NonNegative
	// variable. Backends may return near-integers; callers must round
	// tolerantly (value >= 0.5 counts as selected).
	Values map[model.VarID]float64
}

// Backend submits a Model to a concrete MILP/CP solver and returns its raw
// result. It must not mutate Model; a Backend may be invoked more than once
// on the same Model (a built model must be re-solvable).
type Backend interface {
	Solve(ctx context.Context, m *model.Model, cfg Config) (*Result, error)
}

// Selected reports whether the decision variable v was assigned the solver
// produced a Bool variable's value of 1, using the tolerant-rounding rule
// from the component design (value >= 0.5 counts as selected).
func (r *Result) Selected(v model.VarID) bool {
	return r.Values[v] >= 0.5
}
