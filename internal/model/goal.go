package model

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/and161185/proglo/internal/errs"
)

// GoalCategories lists accepted goal categories.
var GoalCategories = []string{"fitness", "nutrition", "sleep", "weight", "other"}

// Goal tracks progress from StartValue toward TargetValue.
type Goal struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	StartValue   float64 `json:"start_value"`
	CurrentValue float64 `json:"current_value"`
	TargetValue  float64 `json:"target_value"`
	Unit         string  `json:"unit"`
	Deadline     *string `json:"deadline,omitempty"`
	Completed    bool    `json:"completed"`
}

func (g Goal) RecordID() string       { return g.ID }
func (g Goal) OwnerID() string        { return g.UserID }
func (g *Goal) SetRecordID(id string) { g.ID = id }

// Decreasing reports whether the goal aims below its start (e.g. weight loss).
func (g Goal) Decreasing() bool { return g.TargetValue < g.StartValue }

// Reached reports whether CurrentValue has reached or crossed TargetValue.
func (g Goal) Reached() bool {
	if g.Decreasing() {
		return g.CurrentValue <= g.TargetValue
	}
	return g.CurrentValue >= g.TargetValue
}

// Progress returns completion as a whole percentage within [0, 100].
func (g Goal) Progress() int {
	span := g.TargetValue - g.StartValue
	if span == 0 {
		if g.Reached() {
			return 100
		}
		return 0
	}
	p := math.Round((g.CurrentValue - g.StartValue) / span * 100)
	return int(math.Max(0, math.Min(100, p)))
}

// Derive recomputes Completed.
func (g *Goal) Derive() { g.Completed = g.Reached() }

// Validate checks the goal invariants.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: empty title", errs.ErrValidation)
	}
	if !slices.Contains(GoalCategories, g.Category) {
		return fmt.Errorf("%w: unknown category %q", errs.ErrValidation, g.Category)
	}
	if strings.TrimSpace(g.Unit) == "" {
		return fmt.Errorf("%w: empty unit", errs.ErrValidation)
	}
	if !finite(g.StartValue, g.CurrentValue, g.TargetValue) {
		return fmt.Errorf("%w: goal values must be finite", errs.ErrValidation)
	}
	if g.Deadline != nil {
		return validDate(*g.Deadline)
	}
	return nil
}

// GoalPatch carries a partial goal update.
type GoalPatch struct {
	Title        *string
	Description  *string
	Category     *string
	StartValue   *float64
	CurrentValue *float64
	TargetValue  *float64
	Unit         *string
	Deadline     *string
}

// Apply merges non-nil fields into g.
func (p GoalPatch) Apply(g *Goal) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.StartValue != nil {
		g.StartValue = *p.StartValue
	}
	if p.CurrentValue != nil {
		g.CurrentValue = *p.CurrentValue
	}
	if p.TargetValue != nil {
		g.TargetValue = *p.TargetValue
	}
	if p.Unit != nil {
		g.Unit = *p.Unit
	}
	if p.Deadline != nil {
		g.Deadline = p.Deadline
	}
}
