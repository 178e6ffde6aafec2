package system

import (
	"sync/atomic"

	"github.com/lixenwraith/forcegraph/constant"
	"github.com/lixenwraith/forcegraph/engine"
	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/status"
)

// BoundarySystem keeps entity footprints inside the arena, bouncing velocity on contact
type BoundarySystem struct {
	world *engine.World
	res   engine.Resources

	statBounces *atomic.Int64
}

// NewBoundarySystem creates a new containment system
func NewBoundarySystem(world *engine.World) engine.System {
	res := engine.GetResources(world)
	return &BoundarySystem{
		world:       world,
		res:         res,
		statBounces: res.Status.Ints.Get(status.BoundaryBounces),
	}
}

func (s *BoundarySystem) Init() {}

func (s *BoundarySystem) Priority() int {
	return constant.PriorityBoundary
}

// Update panics when no arena was ever set: that is a wiring defect, not scene data
func (s *BoundarySystem) Update() {
	scene := s.res.Scene
	if !scene.ArenaSet {
		panic("boundary containment requires an arena extent; call SetArena before the first tick")
	}
	restitution := s.res.Params.Restitution
	c := &s.world.Components

	entities := s.world.Query().
		With(c.Position).
		With(c.Velocity).
		With(c.Boundary).
		Execute()

	var bounces int64
	for _, e := range entities {
		pos, ok := c.Position.Get(e)
		if !ok {
			continue
		}
		vel, ok := c.Velocity.Get(e)
		if !ok {
			continue
		}
		ext, ok := c.Boundary.Get(e)
		if !ok {
			continue
		}
		if n := physics.Contain(&pos, &vel, ext, scene.Arena, restitution); n > 0 {
			bounces += int64(n)
			c.Position.Set(e, pos)
			c.Velocity.Set(e, vel)
		}
	}
	s.statBounces.Store(bounces)
}
