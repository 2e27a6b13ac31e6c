package plan

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Repository defines the interface for plan persistence.
type Repository interface {
	// ListByUser returns a user's plans, oldest first.
	ListByUser(ctx context.Context, userID string) ([]*Plan, error)

	// Get retrieves a plan owned by userID.
	// Returns ErrPlanNotFound if it doesn't exist or belongs to someone else.
	Get(ctx context.Context, userID, planID string) (*Plan, error)

	// Create stores a new plan.
	Create(ctx context.Context, plan *Plan) error

	// Update replaces an existing plan.
	// Returns ErrPlanNotFound if it doesn't exist.
	Update(ctx context.Context, plan *Plan) error
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	plans map[string]*Plan
}

// NewInMemoryRepository creates a new in-memory plan repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		plans: make(map[string]*Plan),
	}
}

// ListByUser returns a user's plans, oldest first.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]*Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plans := []*Plan{}
	for _, p := range r.plans {
		if p.UserID == userID {
			plans = append(plans, p.clone())
		}
	}
	slices.SortFunc(plans, func(a, b *Plan) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return plans, nil
}

// Get retrieves a plan owned by userID.
func (r *InMemoryRepository) Get(_ context.Context, userID, planID string) (*Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plans[planID]
	if !ok || p.UserID != userID {
		return nil, ErrPlanNotFound
	}
	return p.clone(), nil
}

// Create stores a new plan.
func (r *InMemoryRepository) Create(_ context.Context, plan *Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plans[plan.ID] = plan.clone()
	return nil
}

// Update replaces an existing plan.
func (r *InMemoryRepository) Update(_ context.Context, plan *Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.plans[plan.ID]
	if !ok || existing.UserID != plan.UserID {
		return ErrPlanNotFound
	}
	r.plans[plan.ID] = plan.clone()
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
