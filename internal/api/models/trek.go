package models

// Trek represents a catalog trek.
type Trek struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Location        string            `json:"location"`
	Country         string            `json:"country"`
	Difficulty      Difficulty        `json:"difficulty"`
	Duration        int               `json:"duration"`
	Distance        *int              `json:"distance,omitempty"`
	MaxElevation    *int              `json:"maxElevation,omitempty"`
	BestMonths      []string          `json:"bestMonths"`
	Climate         string            `json:"climate"`
	Description     string            `json:"description"`
	LongDescription *string           `json:"longDescription,omitempty"`
	Rating          int               `json:"rating"`
	DisplayRating   float64           `json:"displayRating"`
	ReviewCount     int               `json:"reviewCount"`
	ImageURL        *string           `json:"imageUrl,omitempty"`
	Highlights      []string          `json:"highlights"`
	Requirements    *TrekRequirements `json:"requirements,omitempty"`
	Price           *int              `json:"price,omitempty"`
	Provider        string            `json:"provider"`
	ProviderURL     *string           `json:"providerUrl,omitempty"`
	ProviderTrekID  *string           `json:"providerTrekId,omitempty"`
	LastUpdated     Timestamp         `json:"lastUpdated"`
	CreatedAt       Timestamp         `json:"createdAt"`
}

// TrekRequirements describes the fitness and experience a trek expects.
type TrekRequirements struct {
	FitnessLevel string `json:"fitnessLevel,omitempty"`
	Experience   string `json:"experience,omitempty"`
}

// TrekList represents a list of treks.
type TrekList struct {
	Items []Trek            `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}

// TrekSearchQuery holds the query parameters of a trek search.
// Empty fields place no constraint.
type TrekSearchQuery struct {
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=Easy Moderate Challenging"`
	Duration   string `json:"duration" validate:"omitempty,oneof=day-hikes weekend week long"`
	Climate    string `json:"climate" validate:"max=50"`
	Country    string `json:"country" validate:"max=80"`
	Search     string `json:"search" validate:"max=100"`
}

// RecommendationSource says how a recommendation list was produced.
type RecommendationSource string

const (
	RecommendationSourceProfile RecommendationSource = "PROFILE"
	RecommendationSourcePopular RecommendationSource = "POPULAR"
)

// Recommendations represents a ranked list of recommended treks.
type Recommendations struct {
	Items  []Trek                `json:"items"`
	Source RecommendationSource `json:"source"`
	Meta   PagedResponseMeta    `json:"meta"`
}
