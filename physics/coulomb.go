package physics

import "github.com/lixenwraith/forcegraph/vmath"

// Charged is a point charge as seen by the pairwise Coulomb pass
type Charged struct {
	X, Y   float64
	Charge float64
}

// CoulombImpulse returns the velocity delta applied to a by b
// accel = k*qa*qb/dist², directed along b->a, so same-signed charges push a away from b
// ok is false when the pair is inside the singularity guard and nothing must be applied
func CoulombImpulse(a, b Charged, k, minDistSq float64) (dvx, dvy float64, ok bool) {
	dx, dy := a.X-b.X, a.Y-b.Y
	distSq := vmath.MagnitudeSq(dx, dy)
	if distSq < minDistSq {
		return 0, 0, false
	}
	accel := k * a.Charge * b.Charge / distSq
	nx, ny := vmath.Normalize2D(dx, dy)
	return accel * nx, accel * ny, true
}
