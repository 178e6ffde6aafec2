package system

import (
	"sync/atomic"

	"github.com/lixenwraith/forcegraph/constant"
	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/engine"
	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/status"
)

// CoulombSystem applies pairwise charge interaction over every ordered pair of charged entities
// O(n²) per tick; the evaluated pair count is published so scenes outgrowing the frame budget show up in metrics
type CoulombSystem struct {
	world *engine.World
	res   engine.Resources

	// Reused between ticks
	bodies   []physics.Charged
	entities []core.Entity

	statPairs *atomic.Int64
}

// NewCoulombSystem creates a new Coulomb repulsion system
func NewCoulombSystem(world *engine.World) engine.System {
	res := engine.GetResources(world)
	return &CoulombSystem{
		world:     world,
		res:       res,
		statPairs: res.Status.Ints.Get(status.CoulombPairs),
	}
}

func (s *CoulombSystem) Init() {}

func (s *CoulombSystem) Priority() int {
	return constant.PriorityCoulomb
}

func (s *CoulombSystem) Update() {
	c := &s.world.Components
	params := s.res.Params

	charged := s.world.Query().
		With(c.Position).
		With(c.Charge).
		Execute()

	// Snapshot positions and charges; velocity writes below never feed back into this pass
	s.bodies = s.bodies[:0]
	s.entities = s.entities[:0]
	for _, e := range charged {
		pos, ok := c.Position.Get(e)
		if !ok {
			continue
		}
		q, ok := c.Charge.Get(e)
		if !ok {
			continue
		}
		s.bodies = append(s.bodies, physics.Charged{X: pos.X, Y: pos.Y, Charge: q.Magnitude})
		s.entities = append(s.entities, e)
	}

	var pairs int64
	for i, a := range s.bodies {
		vel, ok := c.Velocity.Get(s.entities[i])
		if !ok {
			continue
		}
		for j, b := range s.bodies {
			if i == j {
				continue
			}
			pairs++
			dvx, dvy, ok := physics.CoulombImpulse(a, b, params.CoulombConstant, params.MinDistanceSq)
			if !ok {
				continue
			}
			physics.ApplyImpulse(&vel, dvx, dvy)
		}
		c.Velocity.Set(s.entities[i], vel)
	}
	s.statPairs.Store(pairs)
}
