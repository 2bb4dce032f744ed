package assignments

import (
	"context"
	"strings"
	"sync"
)

// Source yields the task ids assigned to this validator since the last fetch.
type Source interface {
	FetchAssignedTasks(ctx context.Context) ([]string, error)
}

// MemorySource is a Source backed by an in-process queue.
type MemorySource struct {
	mu      sync.Mutex
	pending []string
}

func NewMemorySource(initial ...string) *MemorySource {
	s := &MemorySource{}
	s.Assign(initial...)
	return s
}

// Assign queues task ids. Blank ids are dropped.
func (s *MemorySource) Assign(taskIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range taskIDs {
		if id = strings.TrimSpace(id); id != "" {
			s.pending = append(s.pending, id)
		}
	}
}

// FetchAssignedTasks drains the queue.
func (s *MemorySource) FetchAssignedTasks(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	assigned := s.pending
	s.pending = nil
	if assigned == nil {
		assigned = []string{}
	}
	return assigned, nil
}
