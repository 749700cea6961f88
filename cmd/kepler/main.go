// Command kepler computes per-student course schedules: a one-shot CLI
// solve, or an HTTP job-submission server wrapping the same pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/schedcu/kepler/internal/api"
	"github.com/schedcu/kepler/internal/job"
	"github.com/schedcu/kepler/internal/jsonio"
	"github.com/schedcu/kepler/internal/logging"
	"github.com/schedcu/kepler/internal/solver"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "solve":
		runSolve(os.Args[2:])
	case "api":
		runAPI(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: kepler solve in.json out.json")
	fmt.Fprintln(os.Stderr, "       kepler api [host [port]]")
}

func runSolve(args []string) {
	if len(args) != 2 {
		usage()
		os.Exit(1)
	}
	inputFile, outputFile := args[0], args[1]

	in, err := os.Open(inputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer in.Close()

	problem, err := jsonio.ImportProblemFrom(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	adapter := solver.NewAdapter(solver.NewCPSat(), logger)
	solution, err := adapter.Solve(context.Background(), problem, solver.Config{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, err := os.Create(outputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	if err := jsonio.ExportSolutionTo(out, solution); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAPI(args []string) {
	if len(args) > 2 {
		usage()
		os.Exit(1)
	}
	host := ""
	if len(args) >= 1 {
		host = args[0]
	}
	port := "8080"
	if len(args) == 2 {
		port = args[1]
	}
	addr := fmt.Sprintf("%s:%s", host, port)

	logger, err := logging.New(false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	store := job.NewStore()
	scheduler, err := job.NewScheduler(redisAddr, store)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer scheduler.Close()

	adapter := solver.NewAdapter(solver.NewCPSat(), logger)
	handlers := job.NewHandlers(adapter, store, logger)
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	worker := job.NewServer(redisAddr)
	if err := worker.Start(mux); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer worker.Shutdown()

	router := api.NewRouter(scheduler, store, logger)
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", addr))
		if err := router.Start(addr); err != nil {
			logger.Info("HTTP server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
