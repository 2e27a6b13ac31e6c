package ingest

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/trekscout/trekscout/internal/provider/resilience"
	"github.com/trekscout/trekscout/internal/trek"
)

// feedTrek is the wire shape of one entry in a partner feed.
type feedTrek struct {
	ID              string             `json:"id" validate:"required"`
	Name            string             `json:"name" validate:"required"`
	Location        string             `json:"location" validate:"required"`
	Country         string             `json:"country"`
	Difficulty      string             `json:"difficulty" validate:"required,oneof=Easy Moderate Challenging"`
	Duration        int                `json:"duration" validate:"required,min=1"`
	Distance        *int               `json:"distance" validate:"omitempty,min=0"`
	MaxElevation    *int               `json:"maxElevation" validate:"omitempty,min=0"`
	BestMonths      []string           `json:"bestMonths" validate:"required,min=1,dive,required"`
	Climate         string             `json:"climate" validate:"required"`
	Description     string             `json:"description" validate:"required"`
	LongDescription *string            `json:"longDescription"`
	Rating          int                `json:"rating" validate:"min=1,max=50"`
	ReviewCount     int                `json:"reviewCount" validate:"min=0"`
	ImageURL        *string            `json:"imageUrl" validate:"omitempty,url"`
	Highlights      []string           `json:"highlights" validate:"required,min=1,dive,required"`
	Requirements    *trek.Requirements `json:"requirements"`
	Price           *int               `json:"price" validate:"omitempty,min=0"`
	URL             *string            `json:"url" validate:"omitempty,url"`
}

func (f *feedTrek) newTrek(provider trek.Provider) trek.NewTrek {
	country := f.Country
	if country == "" {
		country = "India"
	}
	id := f.ID
	return trek.NewTrek{
		Name:            f.Name,
		Location:        f.Location,
		Country:         country,
		Difficulty:      trek.Difficulty(f.Difficulty),
		Duration:        f.Duration,
		Distance:        f.Distance,
		MaxElevation:    f.MaxElevation,
		BestMonths:      f.BestMonths,
		Climate:         f.Climate,
		Description:     f.Description,
		LongDescription: f.LongDescription,
		Rating:          f.Rating,
		ReviewCount:     f.ReviewCount,
		ImageURL:        f.ImageURL,
		Highlights:      f.Highlights,
		Requirements:    f.Requirements,
		Price:           f.Price,
		Provider:        provider,
		ProviderURL:     f.URL,
		ProviderTrekID:  &id,
	}
}

// FeedSource reads a partner's JSON feed over HTTP.
type FeedSource struct {
	provider trek.Provider
	url      string
	client   *resilience.Client
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewFeedSource creates a feed source. The client should be registered in
// the provider health registry under the provider key.
func NewFeedSource(provider trek.Provider, url string, client *resilience.Client, logger zerolog.Logger) *FeedSource {
	return &FeedSource{
		provider: provider,
		url:      url,
		client:   client,
		validate: validator.New(),
		logger:   logger.With().Str("provider", string(provider)).Logger(),
	}
}

// Provider returns the provider key.
func (s *FeedSource) Provider() trek.Provider {
	return s.provider
}

// FetchTreks downloads the feed. Entries that fail validation are logged
// and dropped.
func (s *FeedSource) FetchTreks(ctx context.Context) ([]trek.NewTrek, error) {
	var entries []feedTrek
	if err := s.client.GetJSON(ctx, s.url, &entries); err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", s.provider, err)
	}

	treks := make([]trek.NewTrek, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		if err := s.validate.Struct(entry); err != nil {
			s.logger.Warn().
				Err(err).
				Int("index", i).
				Str("provider_trek_id", entry.ID).
				Msg("skipping invalid feed entry")
			continue
		}
		treks = append(treks, entry.newTrek(s.provider))
	}

	s.logger.Debug().
		Int("entries", len(entries)).
		Int("accepted", len(treks)).
		Msg("fetched provider feed")

	return treks, nil
}
