package wishlist

import (
	"context"
	"sync"
)

// Repository defines the interface for wishlist persistence.
type Repository interface {
	// List returns a user's items in the order they were added.
	List(ctx context.Context, userID string) ([]*Item, error)

	// Add stores the item unless the user already saved the trek. It
	// returns the stored item and whether it was newly added.
	Add(ctx context.Context, item *Item) (*Item, bool, error)

	// Remove deletes the user's item for trekID and reports whether one existed.
	Remove(ctx context.Context, userID, trekID string) (bool, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string][]*Item // by user ID, in insertion order
}

// NewInMemoryRepository creates a new in-memory wishlist repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items: make(map[string][]*Item),
	}
}

// List returns a user's items in the order they were added.
func (r *InMemoryRepository) List(_ context.Context, userID string) ([]*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.items[userID]
	items := make([]*Item, 0, len(stored))
	for _, item := range stored {
		items = append(items, item.clone())
	}
	return items, nil
}

// Add stores the item unless the user already saved the trek.
func (r *InMemoryRepository) Add(_ context.Context, item *Item) (*Item, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items[item.UserID] {
		if existing.TrekID == item.TrekID {
			return existing.clone(), false, nil
		}
	}

	r.items[item.UserID] = append(r.items[item.UserID], item.clone())
	return item.clone(), true, nil
}

// Remove deletes the user's item for trekID.
func (r *InMemoryRepository) Remove(_ context.Context, userID, trekID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.items[userID]
	for i, item := range items {
		if item.TrekID == trekID {
			r.items[userID] = append(items[:i:i], items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
