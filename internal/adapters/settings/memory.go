package settings

import (
	"context"
	"sync"
)

// MemoryStore keeps settings in process memory. Used by tests and by
// redis-less runs, where settings simply reset on restart.
type MemoryStore struct {
	mu sync.RWMutex
	v  Values
}

// NewMemoryStore creates a memory store seeded with defaults.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{v: Defaults()}
}

// Load returns the current values.
func (s *MemoryStore) Load(_ context.Context) (Values, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v, nil
}

// Save replaces the current values.
func (s *MemoryStore) Save(_ context.Context, v Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v = v
	return nil
}
