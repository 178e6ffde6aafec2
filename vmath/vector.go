package vmath

import "math"

// MagnitudeSq returns squared vector length without sqrt
func MagnitudeSq(x, y float64) float64 {
	return x*x + y*y
}

// Magnitude returns vector length
func Magnitude(x, y float64) float64 {
	return math.Hypot(x, y)
}

// Normalize2D returns the unit vector, zero-safe
func Normalize2D(x, y float64) (nx, ny float64) {
	mag := Magnitude(x, y)
	if mag == 0 {
		return 0, 0
	}
	return x / mag, y / mag
}

// ReflectAxis returns velocity reflected off a wall and attenuated by restitution
func ReflectAxis(v, restitution float64) float64 {
	return -v * restitution
}
