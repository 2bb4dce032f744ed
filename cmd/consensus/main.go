package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/polyneurons/polyneurons-backend/internal/consensus"
	"github.com/polyneurons/polyneurons-backend/internal/consensus/api"
	"github.com/polyneurons/polyneurons-backend/internal/consensus/config"
	"github.com/polyneurons/polyneurons-backend/internal/consensus/metrics"
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
		ProcessName:   logging.ConsensusProcess,
		IsDevelopment: config.IsDevMode(),
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer zapLogger.Sync()
	var logger logging.Logger = zapLogger

	logger.Info("Starting consensus engine...")

	engine, err := consensus.NewEngine(config.GetRequiredConfirmations(), logger.With("component", "registry"))
	if err != nil {
		logger.Fatal("Failed to initialize consensus engine", "error", err)
	}
	for _, validator := range config.GetValidators() {
		engine.AddValidator(validator)
	}

	collector := metrics.NewCollector()
	collector.Start()

	srv := api.NewServer(api.Config{
		Port: config.GetAPIPort(),
	}, api.Dependencies{
		Logger:    logger,
		Engine:    engine,
		Collector: collector,
	})

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	logger.Info("Consensus engine ready",
		"api_port", config.GetAPIPort(),
		"required_confirmations", config.GetRequiredConfirmations(),
		"validators", len(engine.Validators()),
		"roster_file", config.GetRosterFile(),
	)

	// Handle graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-shutdown

	logger.Info("Initiating graceful shutdown...")
	collector.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Consensus engine shutdown complete", "verified_proofs", len(engine.GetVerifiedProofs()))
}
