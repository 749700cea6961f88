// Package api is the echo HTTP job-submission surface wrapping the solver
// behind internal/job's asynq queue.
package api

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/schedcu/kepler/internal/job"
	"go.uber.org/zap"
)

// Router is the configured Echo HTTP server for the job-submission surface.
type Router struct {
	echo     *echo.Echo
	handlers *Handlers
}

// Enqueuer submits a problem document for asynchronous solving under a job
// id. *job.Scheduler satisfies it; tests substitute a fake.
type Enqueuer interface {
	EnqueueSolve(ctx context.Context, jobID string, problemJSON []byte) error
}

// NewRouter constructs a Router backed by scheduler (enqueues solve jobs)
// and store (where their outcomes are collected). logger may be nil.
func NewRouter(scheduler Enqueuer, store *job.Store, logger *zap.Logger) *Router {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST},
	}))

	r := &Router{
		echo: e,
		handlers: &Handlers{
			scheduler: scheduler,
			store:     store,
			validate:  validator.New(),
			logger:    logger,
		},
	}
	r.registerRoutes()
	return r
}

func (r *Router) registerRoutes() {
	r.echo.POST("/api/v1/solve", r.handlers.Solve)
	r.echo.GET("/api/v1/solution/:jobid", r.handlers.Solution)
}

// Start blocks, serving HTTP on addr.
func (r *Router) Start(addr string) error {
	return r.echo.Start(addr)
}

// Shutdown gracefully shuts down the server, waiting for in-flight
// requests until ctx is done.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.echo.Shutdown(ctx)
}
