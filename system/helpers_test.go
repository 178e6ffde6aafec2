package system

import (
	"math"
	"time"

	"github.com/lixenwraith/forcegraph/component"
	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/engine"
	"github.com/lixenwraith/forcegraph/parameter"
	"github.com/lixenwraith/forcegraph/status"
)

const tolerance = 1e-9

// testWorld bundles a world with its core resources for system tests
type testWorld struct {
	world  *engine.World
	scene  *engine.SceneResource
	params *parameter.Physics
	reg    *status.Registry
}

func newTestWorld() *testWorld {
	w := engine.NewWorld()
	params := parameter.DefaultPhysics()
	reg := status.NewRegistry()
	scene := engine.InitResources(w, params, reg)
	scene.Elapsed = 16 * time.Millisecond
	return &testWorld{world: w, scene: scene, params: params, reg: reg}
}

func (tw *testWorld) node(x, y float64) core.Entity {
	e := tw.world.CreateEntity()
	tw.world.Components.Position.Set(e, component.PositionComponent{X: x, Y: y})
	tw.world.Components.Velocity.Set(e, component.VelocityComponent{})
	return e
}

func (tw *testWorld) charged(x, y, q float64) core.Entity {
	e := tw.node(x, y)
	tw.world.Components.Charge.Set(e, component.ChargeComponent{Magnitude: q})
	return e
}

func (tw *testWorld) edge(a, b core.Entity, rest, stiffness float64) core.Entity {
	e := tw.world.CreateEntity()
	tw.world.Components.Edge.Set(e, component.EdgeComponent{A: a, B: b, RestLength: rest, Stiffness: stiffness})
	return e
}

func (tw *testWorld) velocity(e core.Entity) component.VelocityComponent {
	v, _ := tw.world.Components.Velocity.Get(e)
	return v
}

func (tw *testWorld) position(e core.Entity) component.PositionComponent {
	p, _ := tw.world.Components.Position.Get(e)
	return p
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Abs(b))
}
