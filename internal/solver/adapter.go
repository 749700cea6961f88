package solver

import (
	"context"
	"time"

	"github.com/schedcu/kepler/internal/entity"
	"github.com/schedcu/kepler/internal/kerr"
	"github.com/schedcu/kepler/internal/model"
	"go.uber.org/zap"
)

// Adapter builds a Model from a SchedulingProblem, submits it to a Backend,
// and decodes the result into a SchedulingProblemSolution.
type Adapter struct {
	Backend Backend
	Logger  *zap.Logger
}

// NewAdapter constructs an Adapter. logger may be nil.
func NewAdapter(backend Backend, logger *zap.Logger) *Adapter {
	return &Adapter{Backend: backend, Logger: logger}
}

// Solve builds and solves problem in one call.
func (a *Adapter) Solve(ctx context.Context, problem entity.SchedulingProblem, cfg Config) (entity.SchedulingProblemSolution, error) {
	built := model.Build(problem, a.Logger)
	return a.SolveBuilt(ctx, problem, built, cfg)
}

// SolveBuilt solves an already-built Model. built is read-only: calling
// SolveBuilt more than once against the same BuildResult is safe and each
// call independently produces a valid, complete solution.
func (a *Adapter) SolveBuilt(ctx context.Context, problem entity.SchedulingProblem, built *model.BuildResult, cfg Config) (entity.SchedulingProblemSolution, error) {
	start := time.Now()
	result, err := a.Backend.Solve(ctx, built.Model, cfg)
	if err != nil {
		return entity.SchedulingProblemSolution{}, kerr.WrapModelError(err, "solver backend failed")
	}
	if a.Logger != nil {
		a.Logger.Info("solve finished",
			zap.String("status", result.Status),
			zap.Bool("optimal", result.Optimal),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	if !result.Optimal {
		return entity.SchedulingProblemSolution{}, kerr.NewModelError("solver terminated without an optimal solution, status %s", result.Status)
	}

	entries := make(map[string][]entity.ScheduleEntry, len(built.StudentNumbers))
	for _, number := range built.StudentNumbers {
		entries[number] = nil
	}
	for _, fixed := range built.FixedOnes {
		entries[fixed.StudentNumber] = append(entries[fixed.StudentNumber], entity.ScheduleEntry{Course: fixed.Course, Shift: fixed.Shift})
	}
	for id, assignment := range built.VarAssignments {
		if result.Selected(id) {
			entries[assignment.StudentNumber] = append(entries[assignment.StudentNumber], entity.ScheduleEntry{Course: assignment.Course, Shift: assignment.Shift})
		}
	}

	schedules := make(map[string]entity.Schedule, len(entries))
	for number, es := range entries {
		sched, err := entity.NewSchedule(es)
		if err != nil {
			return entity.SchedulingProblemSolution{}, kerr.NewInternalError("solver output does not form a valid schedule for student %q: %v", number, err)
		}
		schedules[number] = sched
	}

	return entity.NewSchedulingProblemSolution(problem, schedules)
}
