// Package validator runs a reasoning node: it turns assigned task ids into
// proofs of reasoning and submits them to the consensus registry.
package validator

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/polyneurons/polyneurons-backend/internal/validator/assignments"
	"github.com/polyneurons/polyneurons-backend/internal/validator/chain"
	"github.com/polyneurons/polyneurons-backend/internal/validator/metrics"
	"github.com/polyneurons/polyneurons-backend/internal/validator/proof"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
)

type Config struct {
	ReasoningSchedule string
	BlockSchedule     string
}

// Plugin drives the reasoning loop and, when a watcher is set, the block loop.
type Plugin struct {
	source   assignments.Source
	pipeline *proof.Pipeline
	watcher  *chain.BlockWatcher
	logger   logging.Logger
	config   Config

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// NewPlugin builds a plugin. watcher may be nil.
func NewPlugin(cfg Config, source assignments.Source, pipeline *proof.Pipeline, watcher *chain.BlockWatcher, logger logging.Logger) *Plugin {
	return &Plugin{
		source:   source,
		pipeline: pipeline,
		watcher:  watcher,
		logger:   logger,
		config:   cfg,
	}
}

func (p *Plugin) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return fmt.Errorf("validator plugin already running")
	}

	p.cron = cron.New(cron.WithSeconds())
	loopCtx, cancel := context.WithCancel(ctx)
	if _, err := p.cron.AddFunc(p.config.ReasoningSchedule, func() {
		if _, err := p.ProcessReasoningTasks(loopCtx); err != nil {
			p.logger.Warn("Reasoning task error", "error", err)
		}
	}); err != nil {
		cancel()
		return fmt.Errorf("invalid reasoning schedule %q: %w", p.config.ReasoningSchedule, err)
	}

	if p.watcher != nil {
		if _, err := p.cron.AddFunc(p.config.BlockSchedule, func() {
			if _, err := p.watcher.Poll(loopCtx); err != nil {
				p.logger.Warn("Block validation error", "error", err)
			}
		}); err != nil {
			cancel()
			return fmt.Errorf("invalid block schedule %q: %w", p.config.BlockSchedule, err)
		}
	}

	p.cancel = cancel
	p.cron.Start()
	p.running = true
	p.logger.Info("Validator plugin started", "reasoning_schedule", p.config.ReasoningSchedule, "block_loop", p.watcher != nil)
	return nil
}

func (p *Plugin) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.cancel()
	<-p.cron.Stop().Done()
	p.running = false
	p.logger.Info("Validator plugin stopped")
}

// ProcessReasoningTasks proves every assigned task once. A failed task is
// logged and skipped; a fetch error ends the cycle. Returns the number of
// proofs submitted.
func (p *Plugin) ProcessReasoningTasks(ctx context.Context) (int, error) {
	taskIDs, err := p.source.FetchAssignedTasks(ctx)
	if err != nil {
		metrics.ReasoningCyclesTotal.WithLabelValues("fetch_error").Inc()
		return 0, fmt.Errorf("failed to fetch assigned tasks: %w", err)
	}
	metrics.ReasoningCyclesTotal.WithLabelValues("success").Inc()

	submitted := 0
	for _, taskID := range taskIDs {
		if ctx.Err() != nil {
			return submitted, ctx.Err()
		}
		p.logger.Info("Executing reasoning task", "task_id", taskID)
		if _, err := p.pipeline.Run(ctx, taskID); err != nil {
			p.logger.Error("Failed to prove task", "task_id", taskID, "error", err)
			continue
		}
		submitted++
	}
	return submitted, nil
}
