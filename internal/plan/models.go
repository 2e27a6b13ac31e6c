// Package plan manages trek plans and their preparation checklists.
package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository errors.
var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrItemNotFound = errors.New("checklist item not found")
)

// Plan is a user's intent to walk a trek, with its preparation checklist.
type Plan struct {
	ID          string
	UserID      string
	TrekID      string
	StartDate   *time.Time
	Preparation Preparation
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Preparation is stored as JSON alongside the plan.
type Preparation struct {
	Timeline []Section `json:"timeline"`
	Gear     []Section `json:"gear"`
}

// Section is a timeline phase or a gear category.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Item is a single checklist entry.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// Progress reports how many checklist items are done out of the total.
func (p *Preparation) Progress() (done, total int) {
	for _, sections := range [][]Section{p.Timeline, p.Gear} {
		for _, s := range sections {
			for _, item := range s.Items {
				total++
				if item.Done {
					done++
				}
			}
		}
	}
	return done, total
}

// SetItem marks the item with the given ID done or not done.
// Returns ErrItemNotFound if no section holds the item.
func (p *Preparation) SetItem(itemID string, done bool) error {
	for _, sections := range [][]Section{p.Timeline, p.Gear} {
		for i := range sections {
			for j := range sections[i].Items {
				if sections[i].Items[j].ID == itemID {
					sections[i].Items[j].Done = done
					return nil
				}
			}
		}
	}
	return ErrItemNotFound
}

func (p Preparation) clone() Preparation {
	return Preparation{
		Timeline: cloneSections(p.Timeline),
		Gear:     cloneSections(p.Gear),
	}
}

func cloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = Section{Key: s.Key, Title: s.Title, Items: append([]Item(nil), s.Items...)}
	}
	return out
}

func (p *Plan) clone() *Plan {
	cpy := *p
	if p.StartDate != nil {
		start := *p.StartDate
		cpy.StartDate = &start
	}
	cpy.Preparation = p.Preparation.clone()
	return &cpy
}

// DefaultPreparation returns the checklist every new plan starts with.
func DefaultPreparation() Preparation {
	return Preparation{
		Timeline: []Section{
			section("6M", "6 Months Before Trek",
				"Book trek and flights",
				"Start fitness training program",
				"Get travel insurance",
				"Visa arrangements",
				"Medical check-up",
				"Research gear requirements",
			),
			section("3M", "3 Months Before Trek",
				"Intensify training (long hikes)",
				"Purchase major gear items",
				"Break in hiking boots",
				"Altitude training if possible",
				"Learn basic local phrases",
				"Review trek itinerary",
			),
			section("1M", "1 Month Before Trek",
				"Final gear check and testing",
				"Confirm bookings",
				"Pack and repack",
				"Weather monitoring",
				"Emergency contacts list",
				"Mental preparation",
			),
		},
		Gear: []Section{
			section("clothing", "Clothing",
				"Base layers (wool/synthetic)",
				"Insulating layers",
				"Waterproof jacket",
				"Down jacket",
				"Hiking pants",
				"Warm hat and sun hat",
				"Gloves (liner and insulated)",
			),
			section("footwear", "Footwear",
				"Hiking boots (broken in)",
				"Camp shoes",
				"Wool hiking socks",
				"Liner socks",
				"Gaiters",
			),
			section("gear", "Gear",
				"Backpack (65-75L)",
				"Sleeping bag (-15°C)",
				"Trekking poles",
				"Headlamp + batteries",
				"Water bottles/hydration",
				"Sleeping pad",
				"Stuff sacks",
			),
			section("safety", "Safety/Health",
				"First aid kit",
				"Altitude sickness meds",
				"Sunglasses",
				"Sunscreen (SPF 50+)",
				"Water purification",
				"Personal medications",
				"Emergency whistle",
			),
		},
	}
}

// section builds a checklist section with IDs like "6m-1" or "footwear-3".
func section(key, title string, labels ...string) Section {
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = Item{
			ID:    fmt.Sprintf("%s-%d", strings.ToLower(key), i+1),
			Label: label,
		}
	}
	return Section{Key: key, Title: title, Items: items}
}
