package session

import (
	"context"
	"sync"

	"github.com/docchat/docchat/internal/model"
)

type memoryStore struct {
	mu    sync.RWMutex
	turns map[string][]model.Turn
}

func init() {
	Register("memory", createMemoryStore)
}

func createMemoryStore(args interface{}) (Store, error) {
	_ = args
	return NewMemoryStore(), nil
}

// NewMemoryStore is an in-process session log for tests and single-node dev.
func NewMemoryStore() Store {
	return &memoryStore{turns: make(map[string][]model.Turn)}
}

func (s *memoryStore) Load(ctx context.Context, sessionID string) ([]model.Turn, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.turns[sessionID]
	out := make([]model.Turn, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *memoryStore) Append(ctx context.Context, sessionID string, turns ...model.Turn) error {
	_ = ctx
	if len(turns) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[sessionID] = append(s.turns[sessionID], turns...)
	return nil
}
