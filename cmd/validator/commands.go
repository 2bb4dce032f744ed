package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/polyneurons/polyneurons-backend/internal/validator"
	"github.com/polyneurons/polyneurons-backend/internal/validator/assignments"
	"github.com/polyneurons/polyneurons-backend/internal/validator/chain"
	"github.com/polyneurons/polyneurons-backend/internal/validator/client"
	"github.com/polyneurons/polyneurons-backend/internal/validator/config"
	"github.com/polyneurons/polyneurons-backend/internal/validator/metrics"
	"github.com/polyneurons/polyneurons-backend/internal/validator/proof"
	pkghttp "github.com/polyneurons/polyneurons-backend/pkg/http"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
)

func RunCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Run the reasoning loop against the consensus API",
		Action: runPlugin,
	}
}

func ProveCommand() *cli.Command {
	return &cli.Command{
		Name:  "prove",
		Usage: "Generate a proof for one task and submit it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "task-id", Usage: "task identifier to prove", Required: true},
			&cli.BoolFlag{Name: "dry-run", Usage: "print the proof without submitting it"},
		},
		Action: proveTask,
	}
}

func VerifyPeerCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify-peer",
		Usage: "Check a peer proof's hash pair",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input-hash", Required: true},
			&cli.StringFlag{Name: "output-hash", Required: true},
		},
		Action: verifyPeer,
	}
}

// setup initializes config, logger and the proof pipeline shared by the commands.
func setup() (*logging.ZapLogger, *proof.Pipeline, *proof.Generator, error) {
	if err := config.Init(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	logger, err := logging.NewZapLogger(logging.LoggerConfig{
		ProcessName:   logging.ValidatorProcess,
		IsDevelopment: config.IsDevMode(),
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	httpConfig := pkghttp.DefaultRetryConfig()
	httpConfig.Timeout = config.GetRequestTimeout()
	httpClient, err := pkghttp.NewClient(httpConfig, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	consensusClient, err := client.NewConsensusClient(config.GetConsensusAPIURL(), config.GetProverPrivateKey(), httpClient, logger.With("component", "consensus-client"))
	if err != nil {
		return nil, nil, nil, err
	}

	generator := proof.NewGenerator(config.GetProverAddress(), logger.With("component", "proof-generator"))
	return logger, proof.NewPipeline(generator, consensusClient, logger), generator, nil
}

func runPlugin(c *cli.Context) error {
	logger, pipeline, _, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting PolyNeurons validator plugin...", "prover", config.GetProverAddress())

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	var watcher *chain.BlockWatcher
	if rpcURL := config.GetChainRPCURL(); rpcURL != "" {
		ethClient, err := chain.Dial(ctx, rpcURL)
		if err != nil {
			return err
		}
		defer ethClient.Close()
		watcher = chain.NewBlockWatcher(ethClient, logger.With("component", "block-watcher"))
	}

	plugin := validator.NewPlugin(validator.Config{
		ReasoningSchedule: config.GetReasoningSchedule(),
		BlockSchedule:     config.GetBlockSchedule(),
	}, assignments.NewMemorySource(config.GetAssignedTasks()...), pipeline, watcher, logger)

	if port := config.GetMetricsPort(); port != "" {
		metricsServer := metrics.NewServer(port, logger.With("component", "metrics"))
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	if err := plugin.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	logger.Info("Initiating graceful shutdown...")
	plugin.Stop()
	return nil
}

func proveTask(c *cli.Context) error {
	logger, pipeline, generator, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	taskID := c.String("task-id")
	ctx := context.Background()

	if c.Bool("dry-run") {
		p, err := generator.Generate(ctx, taskID)
		if err != nil {
			return err
		}
		fmt.Printf("input_hash:  %s\noutput_hash: %s\nprover:      %s\n", p.InputHash, p.OutputHash, p.Prover)
		return nil
	}

	p, err := pipeline.Run(ctx, taskID)
	if err != nil {
		return err
	}
	fmt.Printf("submitted proof %s for task %s\n", p.InputHash, taskID)
	return nil
}

func verifyPeer(c *cli.Context) error {
	logger, _, generator, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ok, err := generator.ValidatePeerProof(c.Context, c.String("input-hash"), c.String("output-hash"))
	if err != nil {
		return err
	}
	if !ok {
		return cli.Exit("peer proof rejected", 1)
	}
	fmt.Println("peer proof accepted")
	return nil
}
