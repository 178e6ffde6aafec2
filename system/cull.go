package system

import (
	"sync/atomic"

	"github.com/lixenwraith/forcegraph/constant"
	"github.com/lixenwraith/forcegraph/engine"
	"github.com/lixenwraith/forcegraph/status"
)

// CullSystem removes entities marked for destruction
// It runs last in the tick so no simulation system observes a half-deleted entity
type CullSystem struct {
	world *engine.World
	res   engine.Resources

	statRemoved *atomic.Int64
}

// NewCullSystem creates a new cull system
func NewCullSystem(world *engine.World) engine.System {
	res := engine.GetResources(world)
	return &CullSystem{
		world:       world,
		res:         res,
		statRemoved: res.Status.Ints.Get(status.EntityRemoved),
	}
}

func (s *CullSystem) Init() {}

// Priority returns the system's priority (highest value = runs last)
func (s *CullSystem) Priority() int {
	return constant.PriorityCull
}

// Update destroys every tagged entity in one batch
func (s *CullSystem) Update() {
	entities := s.world.Components.Death.All()
	if len(entities) == 0 {
		return
	}
	s.world.DestroyBatch(entities)
	s.statRemoved.Add(int64(len(entities)))
}
