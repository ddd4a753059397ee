package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/and161185/proglo/internal/errs"
)

var (
	// FoodCategories lists accepted nutrition categories.
	FoodCategories = []string{"fruits", "vegetables", "grains", "proteins", "dairy", "beverages", "snacks"}
	// PortionSizes lists accepted portion sizes.
	PortionSizes = []string{"small", "medium", "large"}
	// MealTimes lists accepted meal slots.
	MealTimes = []string{"breakfast", "lunch", "dinner", "snack"}
)

// Macros is an optional nutrient breakdown for a food entry.
type Macros struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"` // g
	Carbs    float64 `json:"carbs"`    // g
	Fats     float64 `json:"fats"`     // g
}

// NutritionEntry is one logged food item.
type NutritionEntry struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	FoodName string  `json:"food_name"`
	Category string  `json:"category"`
	Portion  string  `json:"portion"`
	MealTime string  `json:"meal_time"`
	Date     string  `json:"date"`
	Macros   *Macros `json:"macros,omitempty"`
	Photo    *string `json:"photo,omitempty"`
}

func (e NutritionEntry) RecordID() string       { return e.ID }
func (e NutritionEntry) OwnerID() string        { return e.UserID }
func (e *NutritionEntry) SetRecordID(id string) { e.ID = id }

// Validate checks the entry invariants.
func (e NutritionEntry) Validate() error {
	if strings.TrimSpace(e.FoodName) == "" {
		return fmt.Errorf("%w: empty food name", errs.ErrValidation)
	}
	if !slices.Contains(FoodCategories, e.Category) {
		return fmt.Errorf("%w: unknown category %q", errs.ErrValidation, e.Category)
	}
	if !slices.Contains(PortionSizes, e.Portion) {
		return fmt.Errorf("%w: unknown portion %q", errs.ErrValidation, e.Portion)
	}
	if !slices.Contains(MealTimes, e.MealTime) {
		return fmt.Errorf("%w: unknown meal time %q", errs.ErrValidation, e.MealTime)
	}
	if m := e.Macros; m != nil && (!finite(m.Calories, m.Proteins, m.Carbs, m.Fats) || m.Calories < 0 || m.Proteins < 0 || m.Carbs < 0 || m.Fats < 0) {
		return fmt.Errorf("%w: macros must be finite and non-negative", errs.ErrValidation)
	}
	return validDate(e.Date)
}

// NutritionPatch carries a partial nutrition entry update.
type NutritionPatch struct {
	FoodName *string
	Category *string
	Portion  *string
	MealTime *string
	Date     *string
	Macros   *Macros
	Photo    *string
}

// Apply merges non-nil fields into e.
func (p NutritionPatch) Apply(e *NutritionEntry) {
	if p.FoodName != nil {
		e.FoodName = *p.FoodName
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Portion != nil {
		e.Portion = *p.Portion
	}
	if p.MealTime != nil {
		e.MealTime = *p.MealTime
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Macros != nil {
		e.Macros = p.Macros
	}
	if p.Photo != nil {
		e.Photo = p.Photo
	}
}
