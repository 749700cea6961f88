package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/schedcu/kepler/internal/jsonio"
	"github.com/schedcu/kepler/internal/solver"
	"go.uber.org/zap"
)

// Handlers executes enqueued solve tasks against a solver.Adapter and
// deposits their outcome into a Store.
type Handlers struct {
	adapter *solver.Adapter
	store   *Store
	logger  *zap.Logger
}

// NewHandlers constructs a Handlers. logger may be nil.
func NewHandlers(adapter *solver.Adapter, store *Store, logger *zap.Logger) *Handlers {
	return &Handlers{adapter: adapter, store: store, logger: logger}
}

// RegisterHandlers wires every job type this package knows about onto mux.
func (h *Handlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeSolve, h.HandleSolve)
}

// HandleSolve imports, builds, and solves one enqueued problem, recording
// the outcome in the Store under the task's job id. A malformed problem or
// a solver failure is recorded as Failed rather than retried — re-running
// the same deterministic input would only fail the same way.
func (h *Handlers) HandleSolve(ctx context.Context, t *asynq.Task) error {
	var payload SolvePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal solve payload: %w", asynq.SkipRetry)
	}

	h.store.MarkRunning(payload.JobID)

	problem, err := jsonio.ImportProblem(payload.Problem)
	if err != nil {
		h.store.Fail(payload.JobID, err)
		return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
	}

	solution, err := h.adapter.Solve(ctx, problem, solver.Config{})
	if err != nil {
		h.store.Fail(payload.JobID, err)
		return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
	}

	if h.logger != nil {
		h.logger.Info("solve job completed", zap.String("job_id", payload.JobID))
	}
	h.store.Complete(payload.JobID, solution)
	return nil
}
