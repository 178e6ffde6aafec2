package physics

import (
	"github.com/lixenwraith/forcegraph/component"
	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/vmath"
)

// ContainAxis clamps pos so [pos-half, pos+half] fits in [0, size]
// On contact the velocity is reflected and attenuated by restitution
// skipped is true when size < 2*half; nothing is changed in that case
func ContainAxis(pos, vel, half, size, restitution float64) (newPos, newVel float64, bounced, skipped bool) {
	if size < 2*half {
		return pos, vel, false, true
	}
	clamped := vmath.Clamp(pos, half, size-half)
	if clamped == pos {
		return pos, vel, false, false
	}
	return clamped, vmath.ReflectAxis(vel, restitution), true, false
}

// Contain applies ContainAxis on both axes independently and returns the number of axes that bounced
func Contain(p *component.PositionComponent, v *component.VelocityComponent, ext component.BoundaryExtentComponent, arena core.Extent, restitution float64) int {
	bounces := 0
	var bx, by bool
	p.X, v.VX, bx, _ = ContainAxis(p.X, v.VX, ext.HalfWidth, arena.Width, restitution)
	p.Y, v.VY, by, _ = ContainAxis(p.Y, v.VY, ext.HalfHeight, arena.Height, restitution)
	if bx {
		bounces++
	}
	if by {
		bounces++
	}
	return bounces
}
