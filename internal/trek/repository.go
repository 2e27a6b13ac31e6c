package trek

import (
	"context"

	"github.com/google/uuid"
)

// Catalog defines the interface for trek persistence.
type Catalog interface {
	// GetAll returns every trek in insertion order.
	GetAll(ctx context.Context) ([]*Trek, error)

	// Get retrieves a trek by ID.
	// Returns ErrTrekNotFound if the trek doesn't exist.
	Get(ctx context.Context, id string) (*Trek, error)

	// GetByProviderIdentity retrieves a trek by its provider and
	// provider-specific id. Returns ErrTrekNotFound if absent.
	GetByProviderIdentity(ctx context.Context, provider Provider, providerTrekID string) (*Trek, error)

	// Insert stores a new trek with a fresh ID and timestamps.
	Insert(ctx context.Context, trek NewTrek) (*Trek, error)

	// InsertIfAbsent inserts the trek unless one with the same provider
	// identity already exists. It returns the stored trek and whether it
	// was inserted. Treks without a provider trek id are always inserted.
	InsertIfAbsent(ctx context.Context, trek NewTrek) (*Trek, bool, error)
}

func newUUID() string {
	return uuid.New().String()
}
