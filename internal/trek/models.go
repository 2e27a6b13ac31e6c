// Package trek provides the trek catalog: the Trek record, the Catalog
// repository and its in-memory and PostgreSQL implementations.
package trek

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrTrekNotFound = errors.New("trek not found")
)

// Difficulty is the trek difficulty classification.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "Easy"
	DifficultyModerate    Difficulty = "Moderate"
	DifficultyChallenging Difficulty = "Challenging"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyChallenging:
		return true
	}
	return false
}

// Provider identifies where a trek was ingested from.
type Provider string

const (
	ProviderBikat      Provider = "bikat"
	ProviderYHAI       Provider = "yhai"
	ProviderIndiahikes Provider = "indiahikes"
	ProviderCustom     Provider = "custom"
)

// Valid reports whether p is one of the known providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderBikat, ProviderYHAI, ProviderIndiahikes, ProviderCustom:
		return true
	}
	return false
}

// Requirements describes the fitness and experience a trek expects.
type Requirements struct {
	FitnessLevel string `json:"fitnessLevel,omitempty"`
	Experience   string `json:"experience,omitempty"`
}

// Trek is a catalog entry. It is immutable after creation.
type Trek struct {
	ID              string
	Name            string
	Location        string
	Country         string
	Difficulty      Difficulty
	Duration        int // days
	Distance        *int
	MaxElevation    *int
	BestMonths      []string
	Climate         string
	Description     string
	LongDescription *string
	// Rating is stored in tenths of a star (1-50).
	Rating       int
	ReviewCount  int
	ImageURL     *string
	Highlights   []string
	Requirements *Requirements
	Price        *int

	// Provenance. Provider and ProviderTrekID together form the natural
	// dedup key for ingested treks.
	Provider       Provider
	ProviderURL    *string
	ProviderTrekID *string

	LastUpdated time.Time
	CreatedAt   time.Time
}

// DisplayRating returns the rating on the 0.1-5.0 star scale.
func (t *Trek) DisplayRating() float64 {
	return float64(t.Rating) / 10
}

// ProviderKey returns the provider identity key, or "" when the trek has no
// provider-specific id.
func (t *Trek) ProviderKey() string {
	if t.ProviderTrekID == nil || *t.ProviderTrekID == "" {
		return ""
	}
	return providerKey(t.Provider, *t.ProviderTrekID)
}

func providerKey(provider Provider, providerTrekID string) string {
	return string(provider) + "\x00" + providerTrekID
}

// NewTrek is the insert shape of a trek. The catalog assigns ID and
// timestamps.
type NewTrek struct {
	Name            string
	Location        string
	Country         string
	Difficulty      Difficulty
	Duration        int
	Distance        *int
	MaxElevation    *int
	BestMonths      []string
	Climate         string
	Description     string
	LongDescription *string
	Rating          int
	ReviewCount     int
	ImageURL        *string
	Highlights      []string
	Requirements    *Requirements
	Price           *int
	Provider        Provider
	ProviderURL     *string
	ProviderTrekID  *string
}

// build turns the insert shape into a stored Trek with defaults applied.
func (n *NewTrek) build(id string, now time.Time) *Trek {
	provider := n.Provider
	if provider == "" {
		provider = ProviderCustom
	}
	reviews := n.ReviewCount
	if reviews < 0 {
		reviews = 0
	}
	return &Trek{
		ID:              id,
		Name:            n.Name,
		Location:        n.Location,
		Country:         n.Country,
		Difficulty:      n.Difficulty,
		Duration:        n.Duration,
		Distance:        n.Distance,
		MaxElevation:    n.MaxElevation,
		BestMonths:      append([]string(nil), n.BestMonths...),
		Climate:         n.Climate,
		Description:     n.Description,
		LongDescription: n.LongDescription,
		Rating:          n.Rating,
		ReviewCount:     reviews,
		ImageURL:        n.ImageURL,
		Highlights:      append([]string(nil), n.Highlights...),
		Requirements:    n.Requirements,
		Price:           n.Price,
		Provider:        provider,
		ProviderURL:     n.ProviderURL,
		ProviderTrekID:  n.ProviderTrekID,
		LastUpdated:     now,
		CreatedAt:       now,
	}
}

// ProviderKey returns the provider identity key of the insert shape.
func (n *NewTrek) ProviderKey() string {
	if n.ProviderTrekID == nil || *n.ProviderTrekID == "" {
		return ""
	}
	provider := n.Provider
	if provider == "" {
		provider = ProviderCustom
	}
	return providerKey(provider, *n.ProviderTrekID)
}

// clone returns a deep copy so callers cannot mutate stored records.
func (t *Trek) clone() *Trek {
	cpy := *t
	cpy.BestMonths = append([]string(nil), t.BestMonths...)
	cpy.Highlights = append([]string(nil), t.Highlights...)
	if t.Requirements != nil {
		req := *t.Requirements
		cpy.Requirements = &req
	}
	return &cpy
}

// NewID returns a fresh trek identifier.
func NewID() string {
	return "trk_" + newUUID()
}
