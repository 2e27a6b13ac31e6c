// Package profile stores trekking profiles, one per user.
package profile

import (
	"errors"
	"time"
)

// ErrProfileNotFound is returned when a user has no profile yet.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is a user's trekking preferences.
type Profile struct {
	ID                 string
	UserID             string
	AgeRange           string
	FitnessLevel       string
	TrekExperience     string
	PreferredDurations []string
	ClimatePreferences []string
	TravelRadius       string
	Location           *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (p *Profile) clone() *Profile {
	cpy := *p
	cpy.PreferredDurations = append([]string(nil), p.PreferredDurations...)
	cpy.ClimatePreferences = append([]string(nil), p.ClimatePreferences...)
	if p.Location != nil {
		loc := *p.Location
		cpy.Location = &loc
	}
	return &cpy
}
