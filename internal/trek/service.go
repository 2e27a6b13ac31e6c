package trek

import (
	"context"
	"fmt"

	"github.com/trekscout/trekscout/internal/api/models"
)

// Service provides catalog read operations in API form.
type Service struct {
	catalog Catalog
}

// NewService creates a new trek service.
func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// List returns the full catalog in insertion order.
func (s *Service) List(ctx context.Context) (*models.TrekList, error) {
	treks, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list treks: %w", err)
	}

	return &models.TrekList{
		Items: ToAPIList(treks),
		Meta:  models.PagedResponseMeta{Count: len(treks)},
	}, nil
}

// Get returns a single trek. Returns ErrTrekNotFound if absent.
func (s *Service) Get(ctx context.Context, id string) (*models.Trek, error) {
	t, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result := ToAPI(t)
	return &result, nil
}

// ToAPIList converts treks to API models, preserving order.
func ToAPIList(treks []*Trek) []models.Trek {
	items := make([]models.Trek, 0, len(treks))
	for _, t := range treks {
		items = append(items, ToAPI(t))
	}
	return items
}

// ToAPI converts a trek to its API model.
func ToAPI(t *Trek) models.Trek {
	result := models.Trek{
		ID:              t.ID,
		Name:            t.Name,
		Location:        t.Location,
		Country:         t.Country,
		Difficulty:      models.Difficulty(t.Difficulty),
		Duration:        t.Duration,
		Distance:        t.Distance,
		MaxElevation:    t.MaxElevation,
		BestMonths:      nonNil(t.BestMonths),
		Climate:         t.Climate,
		Description:     t.Description,
		LongDescription: t.LongDescription,
		Rating:          t.Rating,
		DisplayRating:   t.DisplayRating(),
		ReviewCount:     t.ReviewCount,
		ImageURL:        t.ImageURL,
		Highlights:      nonNil(t.Highlights),
		Price:           t.Price,
		Provider:        string(t.Provider),
		ProviderURL:     t.ProviderURL,
		ProviderTrekID:  t.ProviderTrekID,
		LastUpdated:     models.Timestamp(t.LastUpdated),
		CreatedAt:       models.Timestamp(t.CreatedAt),
	}
	if t.Requirements != nil {
		result.Requirements = &models.TrekRequirements{
			FitnessLevel: t.Requirements.FitnessLevel,
			Experience:   t.Requirements.Experience,
		}
	}
	return result
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
