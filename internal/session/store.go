// Package session persists the ordered conversation transcript for a
// session id as an append-only log. Loads tolerate eventual consistency;
// turns already appended in the same causal chain are always observed.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/docchat/docchat/internal/config"
	"github.com/docchat/docchat/internal/model"
)

type Store interface {
	// Load returns the session's turns oldest first. A session that has
	// never been written returns an empty slice, not an error.
	Load(ctx context.Context, sessionID string) ([]model.Turn, error)
	// Append adds turns to the end of the session log. Failures are wrapped
	// in apperrors.ErrMemoryWrite so the caller can treat them as non-fatal.
	Append(ctx context.Context, sessionID string, turns ...model.Turn) error
}

type Factory func(args interface{}) (Store, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registryMu.Lock()
	registry[key] = factory
	registryMu.Unlock()
}

func New(cfg config.SessionStoreConfig) (Store, error) {
	key := strings.ToLower(strings.TrimSpace(cfg.Type))
	if key == "" {
		return nil, fmt.Errorf("session_store.type is required")
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("unsupported session store type: %s", cfg.Type)
	}
	return factory(cfg.Data)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("store config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode store config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode store config: %w", err)
	}
	return nil
}
