package component

// PositionComponent is the spatial location in scene units
// Mutated only by integration and boundary containment
type PositionComponent struct {
	X, Y float64
}

// VelocityComponent is the rate of change in scene units per second
// Forces add to it; damping and boundary contact scale it
type VelocityComponent struct {
	VX, VY float64
}

// Add returns the velocity with (dx, dy) accumulated
func (v VelocityComponent) Add(dx, dy float64) VelocityComponent {
	return VelocityComponent{VX: v.VX + dx, VY: v.VY + dy}
}
