package featureflags

import "context"

// Repository persists flag values that override the defaults.
type Repository interface {
	// GetAllFlags returns every stored flag keyed by flag key.
	GetAllFlags(ctx context.Context) (map[string]*Flag, error)

	// SetFlags stores a batch of flags. Either all of them are written or
	// none is.
	SetFlags(ctx context.Context, flags []*Flag) error
}
