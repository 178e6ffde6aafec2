package system

import (
	"github.com/lixenwraith/forcegraph/constant"
	"github.com/lixenwraith/forcegraph/engine"
	"github.com/lixenwraith/forcegraph/physics"
)

// IntegrationSystem moves positions by the accumulated velocity (semi-implicit Euler: velocity first, then position)
type IntegrationSystem struct {
	world *engine.World
	res   engine.Resources
}

// NewIntegrationSystem creates a new integration system
func NewIntegrationSystem(world *engine.World) engine.System {
	return &IntegrationSystem{
		world: world,
		res:   engine.GetResources(world),
	}
}

func (s *IntegrationSystem) Init() {}

func (s *IntegrationSystem) Priority() int {
	return constant.PriorityIntegration
}

func (s *IntegrationSystem) Update() {
	elapsedMs := s.res.Scene.ElapsedMs()
	if elapsedMs <= 0 {
		return
	}
	unit := s.res.Params.UnitConversion
	c := &s.world.Components

	for _, e := range s.world.Query().With(c.Position).With(c.Velocity).Execute() {
		pos, ok := c.Position.Get(e)
		if !ok {
			continue
		}
		vel, ok := c.Velocity.Get(e)
		if !ok {
			continue
		}
		physics.Integrate(&pos, vel, unit, elapsedMs)
		c.Position.Set(e, pos)
	}
}
