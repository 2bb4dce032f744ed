package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/polyneurons/polyneurons-backend/internal/cognitive/metrics"
	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

var ErrQueueFull = errors.New("task queue is full")

var _ TaskRequeuer = (*TaskQueue)(nil)

// TaskQueue is a bounded in-memory TaskSource fed by the API.
type TaskQueue struct {
	mu       sync.Mutex
	tasks    []*types.ReasoningTask
	capacity int
}

func NewTaskQueue(capacity int) *TaskQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &TaskQueue{
		tasks:    make([]*types.ReasoningTask, 0, capacity),
		capacity: capacity,
	}
}

// Enqueue appends a task and returns the number of tasks now pending.
func (q *TaskQueue) Enqueue(task *types.ReasoningTask) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) >= q.capacity {
		return len(q.tasks), ErrQueueFull
	}
	q.tasks = append(q.tasks, task)
	metrics.PendingTasks.Set(float64(len(q.tasks)))
	return len(q.tasks), nil
}

// FetchPendingTasks drains the queue in FIFO order.
func (q *TaskQueue) FetchPendingTasks(ctx context.Context) ([]*types.ReasoningTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	pending := q.tasks
	q.tasks = make([]*types.ReasoningTask, 0, q.capacity)
	metrics.PendingTasks.Set(0)
	return pending, nil
}

// Requeue puts unfinished tasks back at the head of the queue. They were
// admitted once already, so capacity is not enforced.
func (q *TaskQueue) Requeue(tasks []*types.ReasoningTask) {
	if len(tasks) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	merged := make([]*types.ReasoningTask, 0, len(tasks)+len(q.tasks))
	merged = append(merged, tasks...)
	q.tasks = append(merged, q.tasks...)
	metrics.PendingTasks.Set(float64(len(q.tasks)))
}

func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
