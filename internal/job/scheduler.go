// Package job wraps the solver pipeline behind an asynq work queue:
// POST /api/v1/solve enqueues a solve task and returns immediately; a
// single worker (concurrency 1, matching the one-solve-in-flight resource
// model) executes it and deposits the outcome in a Store for later pickup.
package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeSolve is the asynq task type name for a solve request.
const TypeSolve = "schedule:solve"

// Concurrency is the fixed worker pool size: the scheduling model builder
// and solver adapter are single-threaded with respect to one problem, and
// the job surface runs one solve at a time.
const Concurrency = 1

// SolvePayload is an enqueued solve task's body: the job id it reports
// under, and the raw Problem JSON document to import and solve.
type SolvePayload struct {
	JobID   string          `json:"job_id"`
	Problem json.RawMessage `json:"problem"`
}

// Scheduler enqueues solve tasks onto asynq, backed by Redis.
type Scheduler struct {
	client *asynq.Client
	store  *Store
}

// NewScheduler connects to Redis at redisAddr and constructs a Scheduler.
func NewScheduler(redisAddr string, store *Store) (*Scheduler, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Scheduler{client: client, store: store}, nil
}

// NewServer constructs the asynq worker server that will process enqueued
// solve tasks, at the fixed Concurrency.
func NewServer(redisAddr string) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{Concurrency: Concurrency, Queues: map[string]int{"default": 1}},
	)
}

// EnqueueSolve marks jobID Queued and submits problemJSON for solving
// under that job id.
func (s *Scheduler) EnqueueSolve(ctx context.Context, jobID string, problemJSON []byte) error {
	payload, err := json.Marshal(SolvePayload{JobID: jobID, Problem: problemJSON})
	if err != nil {
		return fmt.Errorf("failed to marshal solve payload: %w", err)
	}
	task := asynq.NewTask(TypeSolve, payload)
	s.store.MarkQueued(jobID)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.TaskID(jobID), asynq.MaxRetry(0)); err != nil {
		return fmt.Errorf("failed to enqueue solve job: %w", err)
	}
	return nil
}

// Close releases the scheduler's Redis connection.
func (s *Scheduler) Close() error {
	return s.client.Close()
}
