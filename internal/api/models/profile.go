package models

// Profile represents a user's trekking profile.
type Profile struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"userId"`
	AgeRange           string           `json:"ageRange,omitempty"`
	FitnessLevel       FitnessLevel     `json:"fitnessLevel"`
	TrekExperience     string           `json:"trekExperience,omitempty"`
	PreferredDurations []DurationBucket `json:"preferredDurations"`
	ClimatePreferences []string         `json:"climatePreferences"`
	TravelRadius       string           `json:"travelRadius,omitempty"`
	Location           *string          `json:"location,omitempty"`
	CreatedAt          Timestamp        `json:"createdAt"`
	UpdatedAt          Timestamp        `json:"updatedAt"`
}

// ProfileInput is the request body for creating or updating a profile.
type ProfileInput struct {
	AgeRange           string           `json:"ageRange" validate:"max=20"`
	FitnessLevel       FitnessLevel     `json:"fitnessLevel" validate:"required,oneof=Beginner Intermediate Advanced"`
	TrekExperience     string           `json:"trekExperience" validate:"max=60"`
	PreferredDurations []DurationBucket `json:"preferredDurations" validate:"required,min=1,dive,oneof=day-hikes weekend week long"`
	ClimatePreferences []string         `json:"climatePreferences" validate:"required,min=1,dive,required,max=50"`
	TravelRadius       string           `json:"travelRadius" validate:"max=60"`
	Location           *string          `json:"location,omitempty" validate:"omitempty,max=120"`
}
