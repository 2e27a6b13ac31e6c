package plan

import (
	"context"
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

// Service provides plan operations.
type Service struct {
	repo  Repository
	treks TrekLookup
	now   func() time.Time
}

// NewService creates a new plan service.
func NewService(repo Repository, treks TrekLookup) *Service {
	return &Service{
		repo:  repo,
		treks: treks,
		now:   time.Now,
	}
}

// Checklist returns the default preparation template.
func (s *Service) Checklist() models.Preparation {
	return toAPIPreparation(DefaultPreparation())
}

// List retrieves all plans for a user.
func (s *Service) List(ctx context.Context, userID string) (*models.PlanList, error) {
	plans, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.Plan, 0, len(plans))
	for _, p := range plans {
		items = append(items, toAPIPlan(p))
	}

	return &models.PlanList{
		Items: items,
		Meta:  models.PagedResponseMeta{Count: len(items)},
	}, nil
}

// Get retrieves a plan by ID for a user.
func (s *Service) Get(ctx context.Context, userID, planID string) (*models.Plan, error) {
	p, err := s.repo.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	result := toAPIPlan(p)
	return &result, nil
}

// Create creates a plan for a trek. Plans without a preparation start from
// the default checklist.
// Returns trek.ErrTrekNotFound if the trek is not in the catalog.
func (s *Service) Create(ctx context.Context, userID string, input *models.PlanCreateRequest) (*models.Plan, error) {
	if err := validation.Check(input); err != nil {
		return nil, err
	}

	if _, err := s.treks.Get(ctx, input.TrekID); err != nil {
		return nil, err
	}

	preparation := DefaultPreparation()
	if input.Preparation != nil {
		preparation = fromAPIPreparation(input.Preparation)
	}

	now := s.now()
	p := &Plan{
		ID:          "pln_" + uuid.NewString(),
		UserID:      userID,
		TrekID:      input.TrekID,
		StartDate:   timePtr(input.StartDate),
		Preparation: preparation,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	result := toAPIPlan(p)
	return &result, nil
}

// Update applies the fields set in input to an existing plan.
func (s *Service) Update(ctx context.Context, userID, planID string, input *models.PlanUpdateRequest) (*models.Plan, error) {
	if err := validation.Check(input); err != nil {
		return nil, err
	}

	p, err := s.repo.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	if input.StartDate != nil {
		p.StartDate = timePtr(input.StartDate)
	}
	if input.IsCompleted != nil {
		p.IsCompleted = *input.IsCompleted
	}
	if input.Preparation != nil {
		p.Preparation = fromAPIPreparation(input.Preparation)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	result := toAPIPlan(p)
	return &result, nil
}

// SetItem checks or unchecks a single checklist item.
// Returns ErrItemNotFound if the plan has no such item.
func (s *Service) SetItem(ctx context.Context, userID, planID, itemID string, input *models.ChecklistItemUpdateRequest) (*models.Plan, error) {
	if err := validation.Check(input); err != nil {
		return nil, err
	}

	p, err := s.repo.Get(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	if err := p.Preparation.SetItem(itemID, *input.Done); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	result := toAPIPlan(p)
	return &result, nil
}

func timePtr(ts *models.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.Time()
	return &t
}

func toAPIPlan(p *Plan) models.Plan {
	done, total := p.Preparation.Progress()
	percent := 0
	if total > 0 {
		percent = done * 100 / total
	}

	return models.Plan{
		ID:          p.ID,
		TrekID:      p.TrekID,
		StartDate:   models.TimestampPtr(p.StartDate),
		Preparation: toAPIPreparation(p.Preparation),
		Progress:    models.PlanProgress{Done: done, Total: total, Percent: percent},
		IsCompleted: p.IsCompleted,
		CreatedAt:   models.Timestamp(p.CreatedAt),
		UpdatedAt:   models.Timestamp(p.UpdatedAt),
	}
}

func toAPIPreparation(p Preparation) models.Preparation {
	return models.Preparation{
		Timeline: toAPISections(p.Timeline),
		Gear:     toAPISections(p.Gear),
	}
}

func toAPISections(sections []Section) []models.ChecklistSection {
	out := make([]models.ChecklistSection, len(sections))
	for i, s := range sections {
		items := make([]models.ChecklistItem, len(s.Items))
		for j, item := range s.Items {
			items[j] = models.ChecklistItem{ID: item.ID, Label: item.Label, Done: item.Done}
		}
		out[i] = models.ChecklistSection{Key: s.Key, Title: s.Title, Items: items}
	}
	return out
}

func fromAPIPreparation(p *models.Preparation) Preparation {
	return Preparation{
		Timeline: fromAPISections(p.Timeline),
		Gear:     fromAPISections(p.Gear),
	}
}

func fromAPISections(sections []models.ChecklistSection) []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		items := make([]Item, len(s.Items))
		for j, item := range s.Items {
			items[j] = Item{ID: item.ID, Label: item.Label, Done: item.Done}
		}
		out[i] = Section{Key: s.Key, Title: s.Title, Items: items}
	}
	return out
}
