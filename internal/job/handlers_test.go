package job

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/schedcu/kepler/internal/entity"
	"github.com/schedcu/kepler/internal/model"
	"github.com/schedcu/kepler/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct{}

func (fakeBackend) Solve(ctx context.Context, m *model.Model, cfg solver.Config) (*solver.Result, error) {
	return &solver.Result{Optimal: true, Status: "OPTIMAL", Values: map[model.VarID]float64{}}, nil
}

const onlyChoiceProblem = `{
  "courses": [
    {"id": "CS101", "year": 1, "shifts": [
      {"type": "T", "number": 1, "capacity": 30, "timeslots": []}
    ]}
  ],
  "students": [
    {"number": "s1", "year": 1, "enrollments": ["CS101"]}
  ]
}`

func newTask(t *testing.T, jobID, problem string) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(SolvePayload{JobID: jobID, Problem: json.RawMessage(problem)})
	require.NoError(t, err)
	return asynq.NewTask(TypeSolve, payload)
}

func TestHandleSolveCompletesOnValidProblem(t *testing.T) {
	store := NewStore()
	adapter := solver.NewAdapter(fakeBackend{}, nil)
	handlers := NewHandlers(adapter, store, nil)

	err := handlers.HandleSolve(context.Background(), newTask(t, "job1", onlyChoiceProblem))
	require.NoError(t, err)

	status, solution, _, ok := store.Take("job1")
	require.True(t, ok)
	assert.Equal(t, Completed, status)
	sched, ok := solution.Schedule("s1")
	require.True(t, ok)
	_, ok = sched.Shift("CS101", entity.T)
	require.True(t, ok)
}

func TestHandleSolveFailsOnMalformedProblem(t *testing.T) {
	store := NewStore()
	adapter := solver.NewAdapter(fakeBackend{}, nil)
	handlers := NewHandlers(adapter, store, nil)

	err := handlers.HandleSolve(context.Background(), newTask(t, "job2", `{"courses": []}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	status, _, solveErr, ok := store.Take("job2")
	require.True(t, ok)
	assert.Equal(t, Failed, status)
	require.Error(t, solveErr)
}
