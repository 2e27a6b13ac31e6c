// Package models provides request and response models for the TrekScout API.
package models

import "time"

// Difficulty represents a trek difficulty.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "Easy"
	DifficultyModerate    Difficulty = "Moderate"
	DifficultyChallenging Difficulty = "Challenging"
)

// FitnessLevel represents a user's self-assessed fitness tier.
type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "Beginner"
	FitnessIntermediate FitnessLevel = "Intermediate"
	FitnessAdvanced     FitnessLevel = "Advanced"
)

// DurationBucket is a named day-range tag.
type DurationBucket string

const (
	DurationDayHikes DurationBucket = "day-hikes"
	DurationWeekend  DurationBucket = "weekend"
	DurationWeek     DurationBucket = "week"
	DurationLong     DurationBucket = "long"
)

// PagedResponseMeta contains list metadata.
type PagedResponseMeta struct {
	Count int `json:"count"`
	Limit int `json:"limit,omitempty"`
}

// HealthStatus represents the health status of a service.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "OK"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusFail     HealthStatus = "FAIL"
)

// Timestamp is a helper type for time.Time with custom JSON formatting.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler for Timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 {
		return &time.ParseError{Layout: time.RFC3339, Value: string(data)}
	}
	// Remove quotes
	s := string(data[1 : len(data)-1])
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Accept plain dates for start dates.
		parsed, err = time.Parse(time.DateOnly, s)
		if err != nil {
			return err
		}
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// TimestampPtr converts an optional time to an optional Timestamp.
func TimestampPtr(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	ts := Timestamp(*t)
	return &ts
}
