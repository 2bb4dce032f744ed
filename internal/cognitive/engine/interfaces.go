package engine

import (
	"context"

	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

// TaskSource yields the tasks waiting to be reasoned over.
type TaskSource interface {
	FetchPendingTasks(ctx context.Context) ([]*types.ReasoningTask, error)
}

// ResultSubmitter receives results the engine produced.
type ResultSubmitter interface {
	SubmitResult(ctx context.Context, taskID uint64, result *types.ReasoningResult) error
}

// TaskRequeuer is implemented by sources that take back tasks a cancelled
// cycle did not finish. They go ahead of anything queued since the fetch.
type TaskRequeuer interface {
	Requeue(tasks []*types.ReasoningTask)
}
