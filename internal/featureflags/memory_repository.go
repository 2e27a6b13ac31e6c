package featureflags

import (
	"context"
	"sync"
	"time"
)

// InMemoryRepository keeps flags in process memory. It backs the memory
// storage mode and tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	flags map[string]Flag
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{flags: make(map[string]Flag)}
}

// GetAllFlags returns copies of the stored flags.
func (r *InMemoryRepository) GetAllFlags(_ context.Context) (map[string]*Flag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*Flag, len(r.flags))
	for key, flag := range r.flags {
		out[key] = &flag
	}
	return out, nil
}

// SetFlags stores copies of flags, stamping UpdatedAt when unset.
func (r *InMemoryRepository) SetFlags(_ context.Context, flags []*Flag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, flag := range flags {
		stored := *flag
		if stored.UpdatedAt.IsZero() {
			stored.UpdatedAt = now
		}
		r.flags[stored.Key] = stored
	}
	return nil
}

var _ Repository = (*InMemoryRepository)(nil)
