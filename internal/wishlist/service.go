package wishlist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/api/validation"
	"github.com/trekscout/trekscout/internal/trek"
)

// TrekLookup resolves trek IDs against the catalog.
type TrekLookup interface {
	Get(ctx context.Context, id string) (*trek.Trek, error)
}

// Service provides wishlist operations.
type Service struct {
	repo  Repository
	treks TrekLookup
}

// NewService creates a new wishlist service.
func NewService(repo Repository, treks TrekLookup) *Service {
	return &Service{repo: repo, treks: treks}
}

// List returns the user's wishlist treks in the order they were added.
// Treks that have left the catalog are skipped.
func (s *Service) List(ctx context.Context, userID string) (*models.Wishlist, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.WishlistItem, 0, len(items))
	for _, item := range items {
		t, err := s.treks.Get(ctx, item.TrekID)
		if errors.Is(err, trek.ErrTrekNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, toAPIItem(item, t))
	}

	return &models.Wishlist{
		Items: result,
		Meta:  models.PagedResponseMeta{Count: len(result)},
	}, nil
}

// Add saves a trek to the user's wishlist. Adding a trek twice returns the
// existing item with created=false.
// Returns trek.ErrTrekNotFound if the trek is not in the catalog.
func (s *Service) Add(ctx context.Context, userID string, input *models.WishlistAddRequest) (*models.WishlistItem, bool, error) {
	if err := validation.Check(input); err != nil {
		return nil, false, err
	}

	t, err := s.treks.Get(ctx, input.TrekID)
	if err != nil {
		return nil, false, err
	}

	item, created, err := s.repo.Add(ctx, &Item{
		ID:        "wsh_" + uuid.New().String(),
		UserID:    userID,
		TrekID:    t.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, false, err
	}

	result := toAPIItem(item, t)
	return &result, created, nil
}

// Remove drops a trek from the user's wishlist.
// Returns ErrItemNotFound if the trek was not saved.
func (s *Service) Remove(ctx context.Context, userID, trekID string) error {
	removed, err := s.repo.Remove(ctx, userID, trekID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrItemNotFound
	}
	return nil
}

func toAPIItem(item *Item, t *trek.Trek) models.WishlistItem {
	return models.WishlistItem{
		ID:      item.ID,
		TrekID:  item.TrekID,
		AddedAt: models.Timestamp(item.CreatedAt),
		Trek:    trek.ToAPI(t),
	}
}
