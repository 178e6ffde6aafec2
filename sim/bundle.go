package sim

import (
	"github.com/lixenwraith/forcegraph/component"
)

// Bundle is the initial component set of a spawned node
// Nil parts stay absent, except Velocity which defaults to zero
type Bundle struct {
	Position     *component.PositionComponent
	Velocity     *component.VelocityComponent
	Charge       *component.ChargeComponent
	Boundary     *component.BoundaryExtentComponent
	MouseAttract bool
}

// At returns a bundle holding only a position
func At(x, y float64) Bundle {
	return Bundle{Position: &component.PositionComponent{X: x, Y: y}}
}

// WithVelocity sets the initial velocity
func (b Bundle) WithVelocity(vx, vy float64) Bundle {
	b.Velocity = &component.VelocityComponent{VX: vx, VY: vy}
	return b
}

// WithCharge sets the node charge
func (b Bundle) WithCharge(q float64) Bundle {
	b.Charge = &component.ChargeComponent{Magnitude: q}
	return b
}

// WithBoundary sets the containment footprint half extents
func (b Bundle) WithBoundary(halfWidth, halfHeight float64) Bundle {
	b.Boundary = &component.BoundaryExtentComponent{HalfWidth: halfWidth, HalfHeight: halfHeight}
	return b
}

// WithMouseAttract tags the node as pointer-attracted
func (b Bundle) WithMouseAttract() Bundle {
	b.MouseAttract = true
	return b
}
