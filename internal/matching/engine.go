package matching

import (
	"context"
	"fmt"
	"slices"

	"github.com/trekscout/trekscout/internal/trek"
)

// DefaultLimit is the number of treks the API returns for recommendations
// and the popular fallback.
const DefaultLimit = 6

// Profile is the part of a user profile the recommender reads.
type Profile struct {
	FitnessLevel       FitnessLevel
	PreferredDurations []string
	ClimatePreferences []string
}

// Filter holds search criteria. Empty fields place no constraint.
type Filter struct {
	Difficulty string
	Duration   string
	Climate    string
	Country    string
	Search     string
}

// SearchMode selects how the text search combines with the other filters.
type SearchMode int

const (
	// SearchModeLegacy decides inclusion by the text match alone whenever
	// Search is set, ignoring the other filter fields.
	SearchModeLegacy SearchMode = iota
	// SearchModeCombined ANDs the text match with every other field.
	SearchModeCombined
)

// String returns the mode name.
func (m SearchMode) String() string {
	if m == SearchModeCombined {
		return "combined"
	}
	return "legacy"
}

// Recommend returns the treks that pass the fitness gate and match the
// profile on duration or climate, ranked by rating descending. Equal
// ratings keep catalog order. The result is not truncated.
func Recommend(treks []*trek.Trek, p Profile) []*trek.Trek {
	out := make([]*trek.Trek, 0, len(treks))
	for _, t := range treks {
		if !FitnessOK(p.FitnessLevel, t.Difficulty) {
			continue
		}
		if DurationOK(p.PreferredDurations, t.Duration) || ClimateOK(p.ClimatePreferences, t.Climate) {
			out = append(out, t)
		}
	}
	sortByRating(out)
	return out
}

// Search returns the treks matching f in catalog order.
func Search(treks []*trek.Trek, f Filter, mode SearchMode) []*trek.Trek {
	out := make([]*trek.Trek, 0, len(treks))
	for _, t := range treks {
		if matches(t, f, mode) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t *trek.Trek, f Filter, mode SearchMode) bool {
	if f.Search != "" && mode == SearchModeLegacy {
		return textMatch(t, f.Search)
	}
	if f.Difficulty != "" && string(t.Difficulty) != f.Difficulty {
		return false
	}
	if f.Duration != "" && !DurationOK([]string{f.Duration}, t.Duration) {
		return false
	}
	if f.Climate != "" && !ClimateOK([]string{f.Climate}, t.Climate) {
		return false
	}
	if f.Country != "" && t.Country != f.Country {
		return false
	}
	if f.Search != "" {
		return textMatch(t, f.Search)
	}
	return true
}

// Popular returns up to limit treks ranked by rating descending.
// A limit <= 0 returns every trek.
func Popular(treks []*trek.Trek, limit int) []*trek.Trek {
	out := slices.Clone(treks)
	sortByRating(out)
	return Truncate(out, limit)
}

// Truncate returns at most limit treks. A limit <= 0 keeps all of them.
func Truncate(treks []*trek.Trek, limit int) []*trek.Trek {
	if limit > 0 && len(treks) > limit {
		return treks[:limit]
	}
	return treks
}

func sortByRating(treks []*trek.Trek) {
	slices.SortStableFunc(treks, func(a, b *trek.Trek) int {
		return b.Rating - a.Rating
	})
}

// Engine runs recommendation and search against a catalog.
type Engine struct {
	catalog trek.Catalog
	mode    SearchMode
}

// NewEngine creates an engine reading from catalog in legacy search mode.
func NewEngine(catalog trek.Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// WithSearchMode returns a copy of the engine using mode.
func (e *Engine) WithSearchMode(mode SearchMode) *Engine {
	cpy := *e
	cpy.mode = mode
	return &cpy
}

// Mode returns the engine's search mode.
func (e *Engine) Mode() SearchMode {
	return e.mode
}

// Recommend ranks the catalog for p.
func (e *Engine) Recommend(ctx context.Context, p Profile) ([]*trek.Trek, error) {
	treks, err := e.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return Recommend(treks, p), nil
}

// Search filters the catalog with f.
func (e *Engine) Search(ctx context.Context, f Filter) ([]*trek.Trek, error) {
	treks, err := e.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return Search(treks, f, e.mode), nil
}

// Popular returns the top limit treks by rating.
func (e *Engine) Popular(ctx context.Context, limit int) ([]*trek.Trek, error) {
	treks, err := e.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return Popular(treks, limit), nil
}
