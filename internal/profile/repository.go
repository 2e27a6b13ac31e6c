package profile

import (
	"context"
	"sync"
)

// Repository defines the interface for profile persistence.
type Repository interface {
	// GetByUserID retrieves the profile of a user.
	// Returns ErrProfileNotFound if the user has none.
	GetByUserID(ctx context.Context, userID string) (*Profile, error)

	// Upsert stores the profile keyed by its UserID. When a profile for the
	// user exists it is replaced, keeping its ID and CreatedAt. The stored
	// profile is returned.
	Upsert(ctx context.Context, p *Profile) (*Profile, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Profile // by user ID
}

// NewInMemoryRepository creates a new in-memory profile repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		profiles: make(map[string]*Profile),
	}
}

// GetByUserID retrieves the profile of a user.
func (r *InMemoryRepository) GetByUserID(_ context.Context, userID string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p.clone(), nil
}

// Upsert creates or replaces the profile of p.UserID.
func (r *InMemoryRepository) Upsert(_ context.Context, p *Profile) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := p.clone()
	if existing, ok := r.profiles[p.UserID]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	}
	r.profiles[p.UserID] = stored
	return stored.clone(), nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
