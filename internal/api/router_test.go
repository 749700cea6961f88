package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/schedcu/kepler/internal/entity"
	"github.com/schedcu/kepler/internal/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSolveBody = `{
  "courses": [
    {"id": "CS101", "year": 1, "shifts": [
      {"type": "T", "number": 1, "capacity": 30, "timeslots": []}
    ]}
  ],
  "students": [
    {"number": "s1", "year": 1, "enrollments": ["CS101"]}
  ]
}`

type fakeEnqueuer struct {
	err      error
	jobIDs   []string
	problems [][]byte
}

func (f *fakeEnqueuer) EnqueueSolve(ctx context.Context, jobID string, problemJSON []byte) error {
	if f.err != nil {
		return f.err
	}
	f.jobIDs = append(f.jobIDs, jobID)
	f.problems = append(f.problems, problemJSON)
	return nil
}

func TestSolveEnqueuesValidProblem(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	store := job.NewStore()
	router := NewRouter(enqueuer, store, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", strings.NewReader(validSolveBody))
	rec := httptest.NewRecorder()
	router.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jobid")
	require.Len(t, enqueuer.jobIDs, 1)
}

func TestSolveRejectsMalformedProblem(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	store := job.NewStore()
	router := NewRouter(enqueuer, store, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", strings.NewReader(`{"courses": []}`))
	rec := httptest.NewRecorder()
	router.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, enqueuer.jobIDs, "a malformed document must never reach the scheduler")
}

func TestSolveReportsSchedulerFailureAs500(t *testing.T) {
	enqueuer := &fakeEnqueuer{err: errors.New("redis down")}
	store := job.NewStore()
	router := NewRouter(enqueuer, store, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", strings.NewReader(validSolveBody))
	rec := httptest.NewRecorder()
	router.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSolutionUnknownJobIsNotFound(t *testing.T) {
	store := job.NewStore()
	router := NewRouter(&fakeEnqueuer{}, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/solution/3b1c6e9a-7f2b-4e3e-9d2a-1a2b3c4d5e6f", nil)
	rec := httptest.NewRecorder()
	router.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSolutionRejectsNonUUIDJobID(t *testing.T) {
	store := job.NewStore()
	router := NewRouter(&fakeEnqueuer{}, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/solution/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSolutionReportsQueuedStatus(t *testing.T) {
	store := job.NewStore()
	jobID := "3b1c6e9a-7f2b-4e3e-9d2a-1a2b3c4d5e6f"
	store.MarkQueued(jobID)
	router := NewRouter(&fakeEnqueuer{}, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/solution/"+jobID, nil)
	rec := httptest.NewRecorder()
	router.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Queued")
}

func TestSolutionReportsFailedStatusAs500AndConsumesIt(t *testing.T) {
	store := job.NewStore()
	jobID := "3b1c6e9a-7f2b-4e3e-9d2a-1a2b3c4d5e6f"
	store.Fail(jobID, errors.New("infeasible"))
	router := NewRouter(&fakeEnqueuer{}, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/solution/"+jobID, nil)
	rec := httptest.NewRecorder()
	router.echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "infeasible")

	rec2 := httptest.NewRecorder()
	router.echo.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusNotFound, rec2.Code, "a failed job is consumed on first retrieval")
}

func TestSolutionReportsCompletedScheduleWrappedInEnvelope(t *testing.T) {
	store := job.NewStore()
	jobID := "3b1c6e9a-7f2b-4e3e-9d2a-1a2b3c4d5e6f"

	t1, err := entity.NewShift(entity.T, 1, 30, nil)
	require.NoError(t, err)
	course, err := entity.NewCourse("CS101", 1, []entity.Shift{t1})
	require.NoError(t, err)
	student, err := entity.NewStudent("s1", 1, []entity.Course{course}, entity.Schedule{})
	require.NoError(t, err)
	problem, err := entity.NewSchedulingProblem([]entity.Course{course}, []entity.Student{student})
	require.NoError(t, err)
	sched, err := entity.NewSchedule([]entity.ScheduleEntry{{Course: course, Shift: t1}})
	require.NoError(t, err)
	solution, err := entity.NewSchedulingProblemSolution(problem, map[string]entity.Schedule{"s1": sched})
	require.NoError(t, err)

	store.Complete(jobID, solution)
	router := NewRouter(&fakeEnqueuer{}, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/solution/"+jobID, nil)
	rec := httptest.NewRecorder()
	router.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"schedules"`)
	assert.Contains(t, rec.Body.String(), "CS101")
}
