package physics

import (
	"math"

	"github.com/lixenwraith/forcegraph/vmath"
)

// MouseImpulse returns the velocity delta pulling (x, y) toward the pointer (px, py)
// Magnitude ramps with SmoothStep(dist/maxRange)*maxAccel: zero at the pointer, saturating at maxRange
func MouseImpulse(x, y, px, py, maxAccel, maxRange float64) (dvx, dvy float64) {
	ox, oy := px-x, py-y
	dist := vmath.Magnitude(ox, oy)
	if dist == 0 {
		return 0, 0
	}
	mag := vmath.SmoothStep(math.Min(1, dist/maxRange)) * maxAccel
	nx, ny := vmath.Normalize2D(ox, oy)
	return mag * nx, mag * ny
}
