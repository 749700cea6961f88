package api

import (
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/schedcu/kepler/internal/job"
	"github.com/schedcu/kepler/internal/jsonio"
	"github.com/schedcu/kepler/internal/kerr"
	"go.uber.org/zap"
)

// Handlers implements the job-submission surface's two endpoints.
type Handlers struct {
	scheduler Enqueuer
	store     *job.Store
	validate  *validator.Validate
	logger    *zap.Logger
}

// Solve handles POST /api/v1/solve: the body is a Problem JSON document.
// It is imported eagerly so malformed input is rejected synchronously
// rather than surfacing later as an async job failure; on success the
// document is enqueued for solving under a fresh job id.
func (h *Handlers) Solve(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err))
	}
	if _, err := jsonio.ImportProblem(body); err != nil {
		return c.JSON(importStatus(err), errorBody(err))
	}

	jobID := uuid.NewString()
	if err := h.scheduler.EnqueueSolve(c.Request().Context(), jobID, body); err != nil {
		if h.logger != nil {
			h.logger.Error("failed to enqueue solve job", zap.Error(err))
		}
		return c.JSON(http.StatusInternalServerError, errorBody(err))
	}
	return c.JSON(http.StatusOK, map[string]string{"jobid": jobID})
}

// Solution handles GET /api/v1/solution/{jobid}.
func (h *Handlers) Solution(c echo.Context) error {
	jobID := c.Param("jobid")
	if err := h.validate.Var(jobID, "required,uuid4"); err != nil {
		return c.NoContent(http.StatusNotFound)
	}

	status, solution, err, ok := h.store.Take(jobID)
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}

	switch status {
	case job.Queued, job.Running:
		return c.JSON(http.StatusOK, map[string]string{"status": string(status)})
	case job.Failed:
		return c.JSON(http.StatusInternalServerError, errorBody(err))
	default:
		return c.JSON(http.StatusOK, map[string]any{"schedules": jsonio.SolutionDocument(solution)})
	}
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// importStatus maps a classified error from ImportProblem to its HTTP
// status: malformed input or a violated entity invariant is the client's
// fault, anything else is ours.
func importStatus(err error) int {
	if kerr.Is(err, kerr.Import) || kerr.Is(err, kerr.Domain) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
