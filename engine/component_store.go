package engine

import (
	"github.com/lixenwraith/forcegraph/component"
)

// ComponentStore provides cached pointers to typed component stores
// Populated once at world construction; pointers remain valid for the world lifetime
type ComponentStore struct {
	// Kinematics
	Position *Store[component.PositionComponent]
	Velocity *Store[component.VelocityComponent]

	// Force participation
	Charge       *Store[component.ChargeComponent]
	MouseAttract *Store[component.MouseAttractComponent]
	Boundary     *Store[component.BoundaryExtentComponent]

	// Constraints
	Edge *Store[component.EdgeComponent]

	// Lifecycle
	Death *Store[component.DeathComponent]
}

func newComponentStore(w *World) ComponentStore {
	return ComponentStore{
		Position: GetStore[component.PositionComponent](w),
		Velocity: GetStore[component.VelocityComponent](w),

		Charge:       GetStore[component.ChargeComponent](w),
		MouseAttract: GetStore[component.MouseAttractComponent](w),
		Boundary:     GetStore[component.BoundaryExtentComponent](w),

		Edge: GetStore[component.EdgeComponent](w),

		Death: GetStore[component.DeathComponent](w),
	}
}
