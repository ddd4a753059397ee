package model

import "math"

// Plausible body measurements. Values outside are rejected as input errors.
const (
	MinHeightCm = 50.0
	MaxHeightCm = 250.0
	MinWeightKg = 10.0
	MaxWeightKg = 400.0
)

// MaxActivityMinutes bounds the duration of a single activity.
const MaxActivityMinutes = 24 * 60

// finite reports whether every value is neither NaN nor infinite.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
