package system

import (
	"github.com/lixenwraith/forcegraph/constant"
	"github.com/lixenwraith/forcegraph/engine"
	"github.com/lixenwraith/forcegraph/physics"
)

// DampingSystem applies viscous friction to every velocity once per tick
type DampingSystem struct {
	world *engine.World
	res   engine.Resources
}

// NewDampingSystem creates a new damping system
func NewDampingSystem(world *engine.World) engine.System {
	return &DampingSystem{
		world: world,
		res:   engine.GetResources(world),
	}
}

func (s *DampingSystem) Init() {}

func (s *DampingSystem) Priority() int {
	return constant.PriorityDamping
}

func (s *DampingSystem) Update() {
	c := &s.world.Components
	factor := s.res.Params.Damping

	for _, e := range s.world.Query().With(c.Velocity).Execute() {
		vel, ok := c.Velocity.Get(e)
		if !ok {
			continue
		}
		physics.Damp(&vel, factor)
		c.Velocity.Set(e, vel)
	}
}
