package model

import (
	"fmt"
	"math"

	"github.com/and161185/proglo/internal/errs"
)

// BMI categories.
const (
	BMIUnderweight = "Underweight"
	BMIHealthy     = "Healthy Weight"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
)

// BMIRecord is a height/weight measurement with its derived index.
type BMIRecord struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Height   float64 `json:"height"` // cm
	Weight   float64 `json:"weight"` // kg
	BMIValue float64 `json:"bmi_value"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

func (r BMIRecord) RecordID() string       { return r.ID }
func (r BMIRecord) OwnerID() string        { return r.UserID }
func (r *BMIRecord) SetRecordID(id string) { r.ID = id }

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if !finite(heightCm, weightKg) || heightCm <= 0 || weightKg <= 0 {
		return 0, fmt.Errorf("%w: height and weight must be positive", errs.ErrValidation)
	}
	if heightCm < MinHeightCm || heightCm > MaxHeightCm || weightKg < MinWeightKg || weightKg > MaxWeightKg {
		return 0, fmt.Errorf("%w: height/weight out of plausible range", errs.ErrValidation)
	}
	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

// BMICategory classifies an unrounded BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25.0:
		return BMIHealthy
	case bmi < 30.0:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// Derive recomputes BMIValue (one decimal) and Category from Height and Weight.
func (r *BMIRecord) Derive() error {
	bmi, err := CalculateBMI(r.Height, r.Weight)
	if err != nil {
		return err
	}
	r.BMIValue = math.Round(bmi*10) / 10
	r.Category = BMICategory(bmi)
	return nil
}

// Validate checks the record invariants.
func (r BMIRecord) Validate() error {
	if _, err := CalculateBMI(r.Height, r.Weight); err != nil {
		return err
	}
	return validDate(r.Date)
}

// BMIPatch carries a partial BMI record update.
type BMIPatch struct {
	Height *float64
	Weight *float64
	Date   *string
}

// Apply merges non-nil fields into r. Derived fields are not touched.
func (p BMIPatch) Apply(r *BMIRecord) {
	if p.Height != nil {
		r.Height = *p.Height
	}
	if p.Weight != nil {
		r.Weight = *p.Weight
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
}
