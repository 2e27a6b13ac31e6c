// Package ingest pulls treks from partner providers into the catalog.
package ingest

import (
	"context"

	"github.com/trekscout/trekscout/internal/trek"
)

// Source produces the treks a provider currently offers.
type Source interface {
	Provider() trek.Provider
	FetchTreks(ctx context.Context) ([]trek.NewTrek, error)
}

// StaticSource serves a fixed table of treks.
type StaticSource struct {
	provider trek.Provider
	treks    []trek.NewTrek
}

// NewStaticSource creates a source that always returns treks, tagged with provider.
func NewStaticSource(provider trek.Provider, treks []trek.NewTrek) *StaticSource {
	tagged := make([]trek.NewTrek, len(treks))
	for i, t := range treks {
		t.Provider = provider
		tagged[i] = t
	}
	return &StaticSource{provider: provider, treks: tagged}
}

// Provider returns the provider key.
func (s *StaticSource) Provider() trek.Provider {
	return s.provider
}

// FetchTreks returns a copy of the table.
func (s *StaticSource) FetchTreks(ctx context.Context) ([]trek.NewTrek, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]trek.NewTrek, len(s.treks))
	copy(out, s.treks)
	return out, nil
}

// DefaultSources returns the bundled partner tables.
func DefaultSources() []Source {
	return []Source{
		NewStaticSource(trek.ProviderBikat, bikatTreks()),
		NewStaticSource(trek.ProviderYHAI, yhaiTreks()),
		NewStaticSource(trek.ProviderIndiahikes, indiahikesTreks()),
	}
}

var (
	_ Source = (*StaticSource)(nil)
	_ Source = (*FeedSource)(nil)
)
