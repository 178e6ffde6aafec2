package physics

import "github.com/lixenwraith/forcegraph/vmath"

// SpringImpulse returns the velocity delta for endpoint a of a Hooke spring; endpoint b receives the exact negation
// delta = rest - dist along b->a: stretched springs pull a toward b, compressed springs push it away
// ok is false for coincident endpoints, where the direction is undefined
func SpringImpulse(ax, ay, bx, by, restLength, stiffness, minDistSq float64) (dvx, dvy float64, ok bool) {
	dx, dy := ax-bx, ay-by
	if vmath.MagnitudeSq(dx, dy) < minDistSq {
		return 0, 0, false
	}
	force := stiffness * (restLength - vmath.Magnitude(dx, dy))
	nx, ny := vmath.Normalize2D(dx, dy)
	return force * nx, force * ny, true
}
