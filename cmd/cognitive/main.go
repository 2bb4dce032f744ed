package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/polyneurons/polyneurons-backend/internal/cognitive/api"
	"github.com/polyneurons/polyneurons-backend/internal/cognitive/config"
	"github.com/polyneurons/polyneurons-backend/internal/cognitive/engine"
	"github.com/polyneurons/polyneurons-backend/internal/cognitive/metrics"
	"github.com/polyneurons/polyneurons-backend/internal/cognitive/tasks"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Initialize configuration
	if err := config.Init(); err != nil {
		panic(fmt.Sprintf("Failed to initialize config: %v", err))
	}

	// Initialize logger
	zapLogger, err := logging.NewZapLogger(logging.LoggerConfig{
		ProcessName:   logging.CognitiveProcess,
		IsDevelopment: config.IsDevMode(),
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer zapLogger.Sync()
	var logger logging.Logger = zapLogger

	logger.Info("Starting cognitive engine...")

	collector := metrics.NewCollector()
	collector.Start()

	processor := tasks.NewTaskProcessor(logger.With("component", "dispatcher"))
	queue := engine.NewTaskQueue(config.GetTaskQueueCapacity())
	results := engine.NewResultStore()

	cognitiveEngine := engine.NewEngine(queue, processor, results, config.GetTaskPollSchedule(), logger.With("component", "engine"))

	srv := api.NewServer(api.Config{
		Port: config.GetAPIPort(),
	}, api.Dependencies{
		Logger:     logger,
		Dispatcher: processor,
		Queue:      queue,
		Results:    results,
		Collector:  collector,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := cognitiveEngine.Start(ctx); err != nil {
		logger.Fatal("Failed to start cognitive engine", "error", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	logger.Info("Cognitive engine ready",
		"api_port", config.GetAPIPort(),
		"poll_schedule", config.GetTaskPollSchedule(),
		"queue_capacity", config.GetTaskQueueCapacity(),
	)

	// Handle graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-shutdown

	performGracefulShutdown(cancel, srv, cognitiveEngine, collector, logger)
}

func performGracefulShutdown(cancel context.CancelFunc, srv *api.Server, cognitiveEngine *engine.Engine, collector *metrics.Collector, logger logging.Logger) {
	shutdownStart := time.Now()
	logger.Info("Initiating graceful shutdown...")

	cancel()
	cognitiveEngine.Stop()
	collector.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Cognitive engine shutdown complete", "duration", time.Since(shutdownStart))
}
