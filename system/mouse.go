package system

import (
	"github.com/lixenwraith/forcegraph/constant"
	"github.com/lixenwraith/forcegraph/engine"
	"github.com/lixenwraith/forcegraph/physics"
)

// MouseAttractSystem pulls tagged entities toward the last reported pointer position
type MouseAttractSystem struct {
	world *engine.World
	res   engine.Resources
}

// NewMouseAttractSystem creates a new pointer attraction system
func NewMouseAttractSystem(world *engine.World) engine.System {
	return &MouseAttractSystem{
		world: world,
		res:   engine.GetResources(world),
	}
}

func (s *MouseAttractSystem) Init() {}

func (s *MouseAttractSystem) Priority() int {
	return constant.PriorityMouse
}

func (s *MouseAttractSystem) Update() {
	scene := s.res.Scene
	if !scene.PointerSet {
		return
	}
	params := s.res.Params
	c := &s.world.Components

	entities := s.world.Query().
		With(c.Position).
		With(c.Velocity).
		With(c.MouseAttract).
		Execute()

	for _, e := range entities {
		pos, ok := c.Position.Get(e)
		if !ok {
			continue
		}
		vel, ok := c.Velocity.Get(e)
		if !ok {
			continue
		}
		dvx, dvy := physics.MouseImpulse(pos.X, pos.Y, scene.PointerX, scene.PointerY, params.MouseMaxAccel, params.MouseMaxRange)
		physics.ApplyImpulse(&vel, dvx, dvy)
		c.Velocity.Set(e, vel)
	}
}
