package job

import (
	"sync"

	"github.com/schedcu/kepler/internal/entity"
)

// Status is a solve job's external lifecycle state.
type Status string

const (
	Queued    Status = "Queued"
	Running   Status = "Running"
	Completed Status = "Completed"
	Failed    Status = "Failed"
)

type entry struct {
	status   Status
	solution entity.SchedulingProblemSolution
	err      error
}

// Store is an in-memory, consume-once result store keyed by job id. A
// completed or failed entry is returned exactly once by Take; after that
// it no longer exists, matching the external contract that a solution is
// not persisted beyond one retrieval. It does not survive process restart
// — no component in this system needs it to.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// MarkQueued records jobID as freshly enqueued.
func (s *Store) MarkQueued(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[jobID] = &entry{status: Queued}
}

// MarkRunning transitions jobID to Running.
func (s *Store) MarkRunning(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[jobID]; ok {
		e.status = Running
	}
}

// Complete records a successful solution for jobID.
func (s *Store) Complete(jobID string, solution entity.SchedulingProblemSolution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[jobID] = &entry{status: Completed, solution: solution}
}

// Fail records a classified failure for jobID.
func (s *Store) Fail(jobID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[jobID] = &entry{status: Failed, err: err}
}

// Take reports jobID's current status. A Queued or Running entry is left
// in place for a later poll; a Completed or Failed entry is removed from
// the store before being returned (consume-once). ok is false if jobID is
// unknown or was already consumed.
func (s *Store) Take(jobID string) (status Status, solution entity.SchedulingProblemSolution, err error, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.entries[jobID]
	if !exists {
		return "", entity.SchedulingProblemSolution{}, nil, false
	}
	if e.status == Completed || e.status == Failed {
		delete(s.entries, jobID)
	}
	return e.status, e.solution, e.err, true
}
