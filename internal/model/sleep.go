package model

import (
	"fmt"

	"github.com/and161185/proglo/internal/errs"
)

// Sleep quality labels.
const (
	SleepInsufficient = "Insufficient"
	SleepFair         = "Fair"
	SleepGood         = "Good"
	SleepExcellent    = "Excellent"
)

// SleepRecord is one night of sleep.
type SleepRecord struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	HoursSlept float64 `json:"hours_slept"`
	Quality    string  `json:"quality"`
	Date       string  `json:"date"`
}

func (r SleepRecord) RecordID() string       { return r.ID }
func (r SleepRecord) OwnerID() string        { return r.UserID }
func (r *SleepRecord) SetRecordID(id string) { r.ID = id }

// SleepQuality labels a number of hours slept.
func SleepQuality(hours float64) string {
	switch {
	case hours < 6:
		return SleepInsufficient
	case hours < 7:
		return SleepFair
	case hours < 9:
		return SleepGood
	default:
		return SleepExcellent
	}
}

// Derive recomputes Quality from HoursSlept.
func (r *SleepRecord) Derive() { r.Quality = SleepQuality(r.HoursSlept) }

// Validate checks the record invariants.
func (r SleepRecord) Validate() error {
	if !finite(r.HoursSlept) || r.HoursSlept < 0 || r.HoursSlept > 24 {
		return fmt.Errorf("%w: hours slept must be within [0, 24]", errs.ErrValidation)
	}
	return validDate(r.Date)
}

// SleepPatch carries a partial sleep record update.
type SleepPatch struct {
	HoursSlept *float64
	Date       *string
}

// Apply merges non-nil fields into r.
func (p SleepPatch) Apply(r *SleepRecord) {
	if p.HoursSlept != nil {
		r.HoursSlept = *p.HoursSlept
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
}
