package vmath

import "math"

// Clamp limits v to [lo, hi]; caller guarantees lo <= hi
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SmoothStep is the cubic Hermite ramp 3t² - 2t³ over t clamped to [0, 1]
// Zero slope at both ends, so forces shaped by it have no kinks at the saturation point
func SmoothStep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// Finite reports whether v is neither NaN nor infinite
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
