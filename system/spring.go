package system

import (
	"sync/atomic"

	"github.com/lixenwraith/forcegraph/component"
	"github.com/lixenwraith/forcegraph/constant"
	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/engine"
	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/status"
)

// SpringSystem applies Hooke's-law forces along edges and prunes edges whose endpoints vanished
// With applyForce false the system only validates references
type SpringSystem struct {
	world      *engine.World
	res        engine.Resources
	applyForce bool

	statPruned *atomic.Int64
}

// NewSpringSystem creates a new spring system
func NewSpringSystem(world *engine.World, applyForce bool) engine.System {
	res := engine.GetResources(world)
	return &SpringSystem{
		world:      world,
		res:        res,
		applyForce: applyForce,
		statPruned: res.Status.Ints.Get(status.EdgePruned),
	}
}

func (s *SpringSystem) Init() {}

func (s *SpringSystem) Priority() int {
	return constant.PrioritySpring
}

func (s *SpringSystem) Update() {
	c := &s.world.Components

	for _, e := range s.world.Query().With(c.Edge).Execute() {
		edge, ok := c.Edge.Get(e)
		if !ok {
			continue
		}
		posA, okA := c.Position.Get(edge.A)
		posB, okB := c.Position.Get(edge.B)
		if !okA || !okB {
			s.prune(e)
			continue
		}
		if !s.applyForce {
			continue
		}
		if !s.apply(edge, posA, posB) {
			s.prune(e)
		}
	}
}

// apply writes both halves of the spring impulse or neither
// Returns false when an endpoint cannot take the impulse
func (s *SpringSystem) apply(edge component.EdgeComponent, posA, posB component.PositionComponent) bool {
	c := &s.world.Components
	params := s.res.Params

	dvx, dvy, ok := physics.SpringImpulse(posA.X, posA.Y, posB.X, posB.Y, edge.RestLength, edge.Stiffness, params.MinDistanceSq)
	if !ok {
		return true
	}

	velA, ok := c.Velocity.Get(edge.A)
	if !ok {
		return false
	}
	original := velA
	physics.ApplyImpulse(&velA, dvx, dvy)
	c.Velocity.Set(edge.A, velA)

	velB, ok := c.Velocity.Get(edge.B)
	if !ok {
		// Roll back A's half; restoring the saved value is exact where re-adding the negation may round
		c.Velocity.Set(edge.A, original)
		return false
	}
	physics.ApplyImpulse(&velB, -dvx, -dvy)
	c.Velocity.Set(edge.B, velB)
	return true
}

func (s *SpringSystem) prune(e core.Entity) {
	if c := &s.world.Components; c.Death.Has(e) {
		return
	}
	s.world.MarkForRemoval(e)
	s.statPruned.Add(1)
}
