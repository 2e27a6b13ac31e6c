package trek

import (
	"context"
	"sync"
	"time"
)

// InMemoryCatalog is an in-memory implementation of Catalog.
// The record order is the insertion order.
type InMemoryCatalog struct {
	mu         sync.RWMutex
	treks      []*Trek
	byID       map[string]*Trek
	byProvider map[string]*Trek

	now   func() time.Time
	newID func() string
}

// NewInMemoryCatalog creates an in-memory catalog pre-populated with seed.
// Seed treks keep their IDs.
func NewInMemoryCatalog(seed ...*Trek) *InMemoryCatalog {
	c := &InMemoryCatalog{
		byID:       make(map[string]*Trek),
		byProvider: make(map[string]*Trek),
		now:        time.Now,
		newID:      NewID,
	}
	for _, t := range seed {
		c.storeLocked(t.clone())
	}
	return c
}

// GetAll returns copies of all treks in insertion order.
func (c *InMemoryCatalog) GetAll(_ context.Context) ([]*Trek, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Trek, len(c.treks))
	for i, t := range c.treks {
		out[i] = t.clone()
	}
	return out, nil
}

// Get retrieves a trek by ID.
func (c *InMemoryCatalog) Get(_ context.Context, id string) (*Trek, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.byID[id]
	if !ok {
		return nil, ErrTrekNotFound
	}
	return t.clone(), nil
}

// GetByProviderIdentity retrieves a trek by provider identity.
func (c *InMemoryCatalog) GetByProviderIdentity(_ context.Context, provider Provider, providerTrekID string) (*Trek, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.byProvider[providerKey(provider, providerTrekID)]
	if !ok {
		return nil, ErrTrekNotFound
	}
	return t.clone(), nil
}

// Insert stores a new trek.
func (c *InMemoryCatalog) Insert(_ context.Context, n NewTrek) (*Trek, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.insertLocked(n).clone(), nil
}

// InsertIfAbsent inserts the trek unless its provider identity is taken.
// The check and the insert happen under one write lock.
func (c *InMemoryCatalog) InsertIfAbsent(_ context.Context, n NewTrek) (*Trek, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key := n.ProviderKey(); key != "" {
		if existing, ok := c.byProvider[key]; ok {
			return existing.clone(), false, nil
		}
	}
	return c.insertLocked(n).clone(), true, nil
}

func (c *InMemoryCatalog) insertLocked(n NewTrek) *Trek {
	t := n.build(c.newID(), c.now())
	c.storeLocked(t)
	return t
}

func (c *InMemoryCatalog) storeLocked(t *Trek) {
	c.treks = append(c.treks, t)
	c.byID[t.ID] = t
	if key := t.ProviderKey(); key != "" {
		// First writer wins the provider index, like a lookup scan would.
		if _, exists := c.byProvider[key]; !exists {
			c.byProvider[key] = t
		}
	}
}

// Len returns the number of treks in the catalog.
func (c *InMemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.treks)
}

// Ensure InMemoryCatalog implements Catalog interface.
var _ Catalog = (*InMemoryCatalog)(nil)
