package physics

import (
	"github.com/lixenwraith/forcegraph/component"
)

// Integrate advances position by velocity over elapsedMs: p += v * unitConversion * elapsedMs
func Integrate(p *component.PositionComponent, v component.VelocityComponent, unitConversion, elapsedMs float64) {
	scale := unitConversion * elapsedMs
	p.X += v.VX * scale
	p.Y += v.VY * scale
}

// Damp scales both velocity axes by factor
func Damp(v *component.VelocityComponent, factor float64) {
	v.VX *= factor
	v.VY *= factor
}

// ApplyImpulse adds velocity delta
func ApplyImpulse(v *component.VelocityComponent, dvx, dvy float64) {
	v.VX += dvx
	v.VY += dvy
}
