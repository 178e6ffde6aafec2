package engine

import (
	"time"

	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/parameter"
	"github.com/lixenwraith/forcegraph/status"
)

// SceneResource is the session-wide mutable scene state
// Written by setters between ticks under the update lock; read-only for systems during a tick
type SceneResource struct {
	// Elapsed is the time consumed by the current tick
	Elapsed time.Duration

	// FrameNumber counts completed ticks
	FrameNumber int64

	// Pointer is the last reported pointer position in scene units
	PointerX, PointerY float64
	PointerSet         bool

	// Arena is the containment rectangle with origin at (0,0)
	Arena    core.Extent
	ArenaSet bool
}

// ElapsedMs returns the tick duration in fractional milliseconds
func (s *SceneResource) ElapsedMs() float64 {
	return float64(s.Elapsed) / float64(time.Millisecond)
}

// SetPointer records the pointer position
func (s *SceneResource) SetPointer(x, y float64) {
	s.PointerX, s.PointerY = x, y
	s.PointerSet = true
}

// SetArena records the arena extent
func (s *SceneResource) SetArena(w, h float64) {
	s.Arena = core.Extent{Width: w, Height: h}
	s.ArenaSet = true
}

// Resources bundles the core resources every system needs
type Resources struct {
	Scene  *SceneResource
	Params *parameter.Physics
	Status *status.Registry
}

// GetResources fetches the core resources, panicking if the world was not initialized with them
func GetResources(w *World) Resources {
	return Resources{
		Scene:  MustGetResource[*SceneResource](w.Resources),
		Params: MustGetResource[*parameter.Physics](w.Resources),
		Status: MustGetResource[*status.Registry](w.Resources),
	}
}

// InitResources installs the core resources on a world
func InitResources(w *World, params *parameter.Physics, reg *status.Registry) *SceneResource {
	scene := &SceneResource{}
	AddResource(w.Resources, scene)
	AddResource(w.Resources, params)
	AddResource(w.Resources, reg)
	return scene
}
