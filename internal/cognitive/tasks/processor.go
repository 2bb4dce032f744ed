package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/polyneurons/polyneurons-backend/internal/cognitive/metrics"
	"github.com/polyneurons/polyneurons-backend/internal/cognitive/reasoning"
	"github.com/polyneurons/polyneurons-backend/pkg/errors"
	"github.com/polyneurons/polyneurons-backend/pkg/logging"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

// Dispatcher is what the engine loop and the API need from the processor.
type Dispatcher interface {
	Process(ctx context.Context, task *types.ReasoningTask) (*types.ReasoningResult, error)
}

// TaskProcessor routes a task to the strategy registered for its type tag.
// It holds one instance of each strategy for its whole lifetime and is safe
// for concurrent use.
type TaskProcessor struct {
	logger          logging.Logger
	marketPredictor reasoning.Strategy
	anomalyDetector reasoning.Strategy
	riskScorer      reasoning.Strategy
}

var _ Dispatcher = (*TaskProcessor)(nil)

func NewTaskProcessor(logger logging.Logger) *TaskProcessor {
	return &TaskProcessor{
		logger:          logger,
		marketPredictor: reasoning.NewMarketPredictor(logger.With("strategy", types.TaskTypeMarketPrediction)),
		anomalyDetector: reasoning.NewAnomalyDetector(logger.With("strategy", types.TaskTypeAnomalyDetection)),
		riskScorer:      reasoning.NewRiskScorer(logger.With("strategy", types.TaskTypeRiskScoring)),
	}
}

// strategyFor matches the closed set of task types. Anything else is UnknownTaskType.
func (p *TaskProcessor) strategyFor(taskType string) (reasoning.Strategy, error) {
	switch taskType {
	case types.TaskTypeMarketPrediction:
		return p.marketPredictor, nil
	case types.TaskTypeAnomalyDetection:
		return p.anomalyDetector, nil
	case types.TaskTypeRiskScoring:
		return p.riskScorer, nil
	default:
		return nil, errors.NewUnknownTaskType(taskType)
	}
}

// Process runs the task through its strategy. Failures are returned as-is; the
// processor never retries.
func (p *TaskProcessor) Process(ctx context.Context, task *types.ReasoningTask) (*types.ReasoningResult, error) {
	if task == nil {
		return nil, errors.NewInvalidInput("nil task")
	}

	strategy, err := p.strategyFor(task.TaskType)
	if err != nil {
		p.recordFailure(task, err)
		return nil, err
	}

	start := time.Now()
	result, err := strategy.Compute(ctx, task.Data)
	metrics.TaskProcessingDuration.WithLabelValues(task.TaskType).Observe(time.Since(start).Seconds())
	if err != nil {
		p.recordFailure(task, err)
		return nil, fmt.Errorf("task %d: %w", task.TaskID, err)
	}

	metrics.TasksProcessedTotal.WithLabelValues(task.TaskType, "success").Inc()
	metrics.ResultConfidence.WithLabelValues(task.TaskType).Observe(result.ConfidenceScore)
	p.logger.Info("Task processed",
		"task_id", task.TaskID,
		"task_type", task.TaskType,
		"confidence", result.ConfidenceScore)

	return result, nil
}

func (p *TaskProcessor) recordFailure(task *types.ReasoningTask, err error) {
	kind := string(errors.KindOf(err))
	if kind == "" {
		kind = "other"
	}
	// Unknown tags share a single label value.
	label := task.TaskType
	if errors.KindOf(err) == errors.KindUnknownTaskType {
		label = "unknown"
	}
	metrics.TasksProcessedTotal.WithLabelValues(label, "failure").Inc()
	metrics.TaskFailuresTotal.WithLabelValues(kind).Inc()
	p.logger.Warn("Task failed",
		"task_id", task.TaskID,
		"task_type", task.TaskType,
		"error", err)
}
