package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/polyneurons/polyneurons-backend/internal/cognitive/metrics"
	"github.com/polyneurons/polyneurons-backend/internal/cognitive/tasks"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

// Engine polls a TaskSource on a cron schedule, reasons over each task and
// hands successful results to a ResultSubmitter.
type Engine struct {
	source     TaskSource
	dispatcher tasks.Dispatcher
	submitter  ResultSubmitter
	logger     logging.Logger

	cron     *cron.Cron
	schedule string

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewEngine(source TaskSource, dispatcher tasks.Dispatcher, submitter ResultSubmitter, schedule string, logger logging.Logger) *Engine {
	return &Engine{
		source:     source,
		dispatcher: dispatcher,
		submitter:  submitter,
		logger:     logger,
		schedule:   schedule,
	}
}

// Start registers the poll loop and starts the cron scheduler.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return fmt.Errorf("engine already running")
	}

	// A stopped cron keeps its entries, so every start gets a fresh one.
	e.cron = cron.New(cron.WithSeconds())
	e.ctx, e.cancel = context.WithCancel(ctx)
	if _, err := e.cron.AddFunc(e.schedule, func() {
		e.ProcessPendingTasks(e.ctx)
	}); err != nil {
		e.cancel()
		return fmt.Errorf("invalid poll schedule %q: %w", e.schedule, err)
	}

	e.cron.Start()
	e.running = true
	e.logger.Info("Cognitive engine started", "schedule", e.schedule)
	return nil
}

// Stop halts the scheduler and waits for an in-flight cycle to finish.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.cancel()
	<-e.cron.Stop().Done()
	e.running = false
	e.logger.Info("Cognitive engine stopped")
}

// ProcessPendingTasks runs one poll cycle. A fetch error ends the cycle;
// a failed task is logged and skipped. When ctx is cancelled mid-cycle the
// unfinished tasks go back to the source if it is a TaskRequeuer.
// Returns the number of submitted results.
func (e *Engine) ProcessPendingTasks(ctx context.Context) int {
	pending, err := e.source.FetchPendingTasks(ctx)
	if err != nil {
		metrics.PollCyclesTotal.WithLabelValues("fetch_error").Inc()
		e.logger.Error("Failed to fetch pending tasks", "error", err)
		return 0
	}
	metrics.PollCyclesTotal.WithLabelValues("success").Inc()

	if len(pending) > 0 {
		e.logger.Debug("Processing pending tasks", "count", len(pending))
	}

	submitted := 0
	for i, task := range pending {
		if ctx.Err() != nil {
			e.requeue(pending[i:])
			return submitted
		}

		result, err := e.dispatcher.Process(ctx, task)
		if err != nil {
			if ctx.Err() != nil {
				e.requeue(pending[i:])
				return submitted
			}
			e.logger.Error("Failed to process task", "task_id", task.TaskID, "error", err)
			continue
		}

		if err := e.submitter.SubmitResult(ctx, task.TaskID, result); err != nil {
			if ctx.Err() != nil {
				e.requeue(pending[i:])
				return submitted
			}
			metrics.ResultSubmissionsTotal.WithLabelValues("failure").Inc()
			e.logger.Error("Failed to submit result", "task_id", task.TaskID, "error", err)
			continue
		}
		metrics.ResultSubmissionsTotal.WithLabelValues("success").Inc()
		submitted++
	}
	return submitted
}

func (e *Engine) requeue(remaining []*types.ReasoningTask) {
	requeuer, ok := e.source.(TaskRequeuer)
	if !ok {
		e.logger.Warn("Poll cycle cancelled, unfinished tasks dropped", "dropped", len(remaining))
		return
	}
	requeuer.Requeue(remaining)
	e.logger.Warn("Poll cycle cancelled, unfinished tasks requeued", "requeued", len(remaining))
}
