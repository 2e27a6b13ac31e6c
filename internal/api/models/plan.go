package models

// ChecklistItem is a single preparation task.
type ChecklistItem struct {
	ID    string `json:"id" validate:"required,max=64"`
	Label string `json:"label" validate:"required,max=120"`
	Done  bool   `json:"done"`
}

// ChecklistSection groups checklist items, either a timeline phase
// ("6M", "3M", "1M") or a gear category.
type ChecklistSection struct {
	Key   string          `json:"key" validate:"required,max=32"`
	Title string          `json:"title" validate:"required,max=80"`
	Items []ChecklistItem `json:"items" validate:"dive"`
}

// Preparation is the preparation checklist of a plan.
type Preparation struct {
	Timeline []ChecklistSection `json:"timeline" validate:"dive"`
	Gear     []ChecklistSection `json:"gear" validate:"dive"`
}

// PlanProgress summarises checklist completion.
type PlanProgress struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// Plan represents a trek plan.
type Plan struct {
	ID          string       `json:"id"`
	TrekID      string       `json:"trekId"`
	StartDate   *Timestamp   `json:"startDate,omitempty"`
	Preparation Preparation  `json:"preparation"`
	Progress    PlanProgress `json:"progress"`
	IsCompleted bool         `json:"isCompleted"`
	CreatedAt   Timestamp    `json:"createdAt"`
	UpdatedAt   Timestamp    `json:"updatedAt"`
}

// PlanList represents a user's plans.
type PlanList struct {
	Items []Plan            `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}

// PlanCreateRequest is the request body for creating a plan.
type PlanCreateRequest struct {
	TrekID      string       `json:"trekId" validate:"required,max=64"`
	StartDate   *Timestamp   `json:"startDate,omitempty"`
	Preparation *Preparation `json:"preparation,omitempty"`
}

// PlanUpdateRequest is the request body for updating a plan.
type PlanUpdateRequest struct {
	StartDate   *Timestamp   `json:"startDate,omitempty"`
	IsCompleted *bool        `json:"isCompleted,omitempty"`
	Preparation *Preparation `json:"preparation,omitempty"`
}

// ChecklistItemUpdateRequest is the request body for toggling a checklist item.
type ChecklistItemUpdateRequest struct {
	Done *bool `json:"done" validate:"required"`
}
