package engine

import (
	"context"
	"sync"

	"github.com/polyneurons/polyneurons-backend/pkg/types"
)

// ResultStore keeps the latest result per task id in memory.
type ResultStore struct {
	mu      sync.RWMutex
	results map[uint64]*types.ReasoningResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[uint64]*types.ReasoningResult)}
}

func (s *ResultStore) SubmitResult(ctx context.Context, taskID uint64, result *types.ReasoningResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[taskID] = result
	return nil
}

func (s *ResultStore) GetResult(taskID uint64) (*types.ReasoningResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[taskID]
	return result, ok
}
