// Package featureflags provides feature flag management for runtime configuration.
package featureflags

import (
	"fmt"
	"math"
	"time"
)

// Well-known feature flag keys.
const (
	// FlagSearchCombinedFilters ANDs the free-text search with the other
	// search filters instead of letting it decide alone.
	FlagSearchCombinedFilters = "search_combined_filters"

	// FlagRecommendationLimit caps the number of recommended treks.
	FlagRecommendationLimit = "recommendation_limit"

	// FlagDisableRecommendations serves the popular list to everyone.
	FlagDisableRecommendations = "disable_recommendations"

	// FlagDisableProviderSync stops scheduled catalog syncs.
	FlagDisableProviderSync = "disable_provider_sync"
)

// DefaultRecommendationLimit is the recommendation limit when the flag is unset.
const DefaultRecommendationLimit = 6

// Flag represents a feature flag with its current value.
type Flag struct {
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// FlagList represents a list of feature flags.
type FlagList struct {
	Items []Flag `json:"items"`
}

// FlagUpdate represents a single flag update request.
type FlagUpdate struct {
	Key   string      `json:"key" validate:"required,oneof=search_combined_filters recommendation_limit disable_recommendations disable_provider_sync"`
	Value interface{} `json:"value"`
}

// FlagUpdateRequest represents a request to update feature flags.
type FlagUpdateRequest struct {
	Updates []FlagUpdate `json:"updates" validate:"required,min=1,dive"`
	Reason  string       `json:"reason" validate:"max=200"`
}

// BoolValue returns the flag value as a boolean.
// Returns the default value if the flag is nil, not found, or not a boolean.
func (f *Flag) BoolValue(defaultValue bool) bool {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case bool:
		return v
	case float64:
		// JSON unmarshals numbers as float64
		return v != 0
	default:
		return defaultValue
	}
}

// IntValue returns the flag value as an integer.
// Returns the default value if the flag is nil, not found, or not a number.
func (f *Flag) IntValue(defaultValue int) int {
	if f == nil {
		return defaultValue
	}
	switch v := f.Value.(type) {
	case float64:
		// JSON unmarshals numbers as float64
		return int(v)
	case int:
		return v
	default:
		return defaultValue
	}
}

// DefaultFlags returns the default feature flags for the application.
func DefaultFlags() map[string]*Flag {
	now := time.Now()
	return map[string]*Flag{
		FlagSearchCombinedFilters: {
			Key:       FlagSearchCombinedFilters,
			Value:     false,
			UpdatedAt: now,
		},
		FlagRecommendationLimit: {
			Key:       FlagRecommendationLimit,
			Value:     DefaultRecommendationLimit,
			UpdatedAt: now,
		},
		FlagDisableRecommendations: {
			Key:       FlagDisableRecommendations,
			Value:     false,
			UpdatedAt: now,
		},
		FlagDisableProviderSync: {
			Key:       FlagDisableProviderSync,
			Value:     false,
			UpdatedAt: now,
		},
	}
}

// MaxRecommendationLimit bounds the recommendation_limit flag.
const MaxRecommendationLimit = 100

// InvalidFlagError reports a flag update that was refused. Index is the
// position of the update in its batch and Field names the offending part
// ("key" or "value").
type InvalidFlagError struct {
	Index  int
	Field  string
	Key    string
	Reason string
}

func (e *InvalidFlagError) Error() string {
	return fmt.Sprintf("feature flag %q: %s", e.Key, e.Reason)
}

// checkFlag returns the value to store for key, converting JSON numbers to
// int for the recommendation limit.
func checkFlag(index int, key string, value interface{}) (interface{}, *InvalidFlagError) {
	invalid := func(field, reason string) *InvalidFlagError {
		return &InvalidFlagError{Index: index, Field: field, Key: key, Reason: reason}
	}

	switch key {
	case FlagRecommendationLimit:
		var n float64
		switch v := value.(type) {
		case float64:
			n = v
		case int:
			n = float64(v)
		default:
			return nil, invalid("value", "value must be an integer")
		}
		if n != math.Trunc(n) {
			return nil, invalid("value", "value must be an integer")
		}
		if n < 1 || n > MaxRecommendationLimit {
			return nil, invalid("value", fmt.Sprintf("value must be between 1 and %d", MaxRecommendationLimit))
		}
		return int(n), nil
	case FlagSearchCombinedFilters, FlagDisableRecommendations, FlagDisableProviderSync:
		b, ok := value.(bool)
		if !ok {
			return nil, invalid("value", "value must be a boolean")
		}
		return b, nil
	}
	return nil, invalid("key", "unknown feature flag")
}
