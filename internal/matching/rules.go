// Package matching implements trek recommendation and search over a
// catalog snapshot. The rule functions are pure and total: unknown tags
// and levels simply match nothing.
package matching

import (
	"strings"

	"github.com/trekscout/trekscout/internal/trek"
)

// FitnessLevel is a user's self-assessed fitness tier.
type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "Beginner"
	FitnessIntermediate FitnessLevel = "Intermediate"
	FitnessAdvanced     FitnessLevel = "Advanced"
)

// Ordinal returns the position of the level on the scale
// Beginner < Intermediate < Advanced, or -1 for an unknown level.
func (f FitnessLevel) Ordinal() int {
	switch f {
	case FitnessBeginner:
		return 0
	case FitnessIntermediate:
		return 1
	case FitnessAdvanced:
		return 2
	}
	return -1
}

// RequiredFitness maps a trek difficulty to its minimum fitness tier.
// Unknown difficulties require Beginner.
func RequiredFitness(d trek.Difficulty) FitnessLevel {
	switch d {
	case trek.DifficultyModerate:
		return FitnessIntermediate
	case trek.DifficultyChallenging:
		return FitnessAdvanced
	}
	return FitnessBeginner
}

// DayRange is an inclusive range of trek durations in days.
type DayRange struct {
	Min, Max int
}

// Contains reports whether days falls within the range.
func (r DayRange) Contains(days int) bool {
	return days >= r.Min && days <= r.Max
}

// Duration bucket tags.
const (
	DurationDayHikes = "day-hikes"
	DurationWeekend  = "weekend"
	DurationWeek     = "week"
	DurationLong     = "long"
)

var durationBuckets = map[string]DayRange{
	DurationDayHikes: {1, 1},
	DurationWeekend:  {2, 3},
	DurationWeek:     {4, 7},
	DurationLong:     {8, 30},
}

// BucketRange returns the day range of a duration tag.
func BucketRange(tag string) (DayRange, bool) {
	r, ok := durationBuckets[tag]
	return r, ok
}

// FitnessOK reports whether a user at fitness may take a trek of difficulty.
func FitnessOK(fitness FitnessLevel, difficulty trek.Difficulty) bool {
	ord := fitness.Ordinal()
	return ord >= 0 && ord >= RequiredFitness(difficulty).Ordinal()
}

// DurationOK reports whether days falls in the range of at least one tag.
func DurationOK(tags []string, days int) bool {
	for _, tag := range tags {
		if r, ok := durationBuckets[tag]; ok && r.Contains(days) {
			return true
		}
	}
	return false
}

// ClimateOK reports whether any preference is a case-insensitive
// substring of climate.
func ClimateOK(prefs []string, climate string) bool {
	lower := strings.ToLower(climate)
	for _, p := range prefs {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// textMatch reports whether query is a case-insensitive substring of the
// trek's name, location or description.
func textMatch(t *trek.Trek, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Name), q) ||
		strings.Contains(strings.ToLower(t.Location), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}
