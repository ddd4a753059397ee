package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/and161185/proglo/internal/errs"
)

// Known activity types. Free-form types are accepted and estimated as ActivityOther.
const (
	ActivityWalking  = "walking"
	ActivityRunning  = "running"
	ActivityCycling  = "cycling"
	ActivitySwimming = "swimming"
	ActivityStrength = "strength"
	ActivityYoga     = "yoga"
	ActivityOther    = "other"
)

// Intensity levels.
const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

// DefaultWeightKg is used for calorie estimates when the user has no weight on file.
const DefaultWeightKg = 70.0

// metTable holds metabolic equivalents per type for low, medium and high intensity.
var metTable = map[string][3]float64{
	ActivityWalking:  {2.5, 3.5, 5.0},
	ActivityRunning:  {7.0, 9.8, 11.5},
	ActivityCycling:  {4.0, 6.8, 10.0},
	ActivitySwimming: {5.0, 7.0, 9.8},
	ActivityStrength: {3.5, 5.0, 6.0},
	ActivityYoga:     {2.0, 2.5, 4.0},
	ActivityOther:    {3.0, 4.5, 6.0},
}

// Location is an optional geotag attached to an activity.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Activity is a single logged workout.
type Activity struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"type"`
	Duration       int       `json:"duration"` // minutes
	Intensity      string    `json:"intensity"`
	Date           string    `json:"date"`
	CaloriesBurned *int      `json:"calories_burned,omitempty"`
	Location       *Location `json:"location,omitempty"`
	Photo          *string   `json:"photo,omitempty"`
}

func (a Activity) RecordID() string       { return a.ID }
func (a Activity) OwnerID() string        { return a.UserID }
func (a *Activity) SetRecordID(id string) { a.ID = id }

// Validate checks the activity invariants.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.Type) == "" {
		return fmt.Errorf("%w: empty activity type", errs.ErrValidation)
	}
	if a.Duration <= 0 || a.Duration > MaxActivityMinutes {
		return fmt.Errorf("%w: duration must be within (0, %d] minutes", errs.ErrValidation, MaxActivityMinutes)
	}
	if intensityIndex(a.Intensity) < 0 {
		return fmt.Errorf("%w: unknown intensity %q", errs.ErrValidation, a.Intensity)
	}
	if a.CaloriesBurned != nil && *a.CaloriesBurned < 0 {
		return fmt.Errorf("%w: negative calories", errs.ErrValidation)
	}
	if l := a.Location; l != nil && (!finite(l.Lat, l.Lng) || math.Abs(l.Lat) > 90 || math.Abs(l.Lng) > 180) {
		return fmt.Errorf("%w: location out of range", errs.ErrValidation)
	}
	return validDate(a.Date)
}

func intensityIndex(s string) int {
	switch s {
	case IntensityLow:
		return 0
	case IntensityMedium:
		return 1
	case IntensityHigh:
		return 2
	}
	return -1
}

// EstimateCalories returns kcal burned as MET * weight(kg) * hours.
func EstimateCalories(activityType, intensity string, minutes int, weightKg float64) int {
	mets, ok := metTable[strings.ToLower(activityType)]
	if !ok {
		mets = metTable[ActivityOther]
	}
	i := intensityIndex(intensity)
	if i < 0 {
		i = 1
	}
	if !finite(weightKg) || weightKg <= 0 {
		weightKg = DefaultWeightKg
	}
	if minutes <= 0 {
		return 0
	}
	minutes = min(minutes, MaxActivityMinutes)
	return int(math.Round(mets[i] * weightKg * float64(minutes) / 60))
}

// ActivityPatch carries a partial activity update.
type ActivityPatch struct {
	Type           *string
	Duration       *int
	Intensity      *string
	Date           *string
	CaloriesBurned *int
	Location       *Location
	Photo          *string
}

// Apply merges non-nil fields into a.
func (p ActivityPatch) Apply(a *Activity) {
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Duration != nil {
		a.Duration = *p.Duration
	}
	if p.Intensity != nil {
		a.Intensity = *p.Intensity
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.CaloriesBurned != nil {
		a.CaloriesBurned = p.CaloriesBurned
	}
	if p.Location != nil {
		a.Location = p.Location
	}
	if p.Photo != nil {
		a.Photo = p.Photo
	}
}
