package model

import (
	"fmt"

	"github.com/and161185/proglo/internal/errs"
)

// MaxHydrationML bounds a single hydration entry.
const MaxHydrationML = 10000

// HydrationRecord is a single water intake.
type HydrationRecord struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Amount int    `json:"amount"` // ml
	Date   string `json:"date"`
}

func (r HydrationRecord) RecordID() string       { return r.ID }
func (r HydrationRecord) OwnerID() string        { return r.UserID }
func (r *HydrationRecord) SetRecordID(id string) { r.ID = id }

// Validate checks the record invariants.
func (r HydrationRecord) Validate() error {
	if r.Amount <= 0 || r.Amount > MaxHydrationML {
		return fmt.Errorf("%w: amount must be within (0, %d] ml", errs.ErrValidation, MaxHydrationML)
	}
	return validDate(r.Date)
}

// HydrationPatch carries a partial hydration record update.
type HydrationPatch struct {
	Amount *int
	Date   *string
}

// Apply merges non-nil fields into r.
func (p HydrationPatch) Apply(r *HydrationRecord) {
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
}
