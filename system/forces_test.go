package system

import (
	"math"
	"testing"

	"github.com/lixenwraith/forcegraph/component"
	"github.com/lixenwraith/forcegraph/constant"
	"github.com/lixenwraith/forcegraph/status"
)

func TestCoulombTwoCharges(t *testing.T) {
	tw := newTestWorld()
	a := tw.charged(0, 0, 50)
	b := tw.charged(10, 0, 50)

	NewCoulombSystem(tw.world).Update()

	va, vb := tw.velocity(a), tw.velocity(b)
	if !near(va.VX, -25) || !near(vb.VX, 25) {
		t.Errorf("Velocities = %v / %v, want -25 / 25", va.VX, vb.VX)
	}
	if va.VY != 0 || vb.VY != 0 {
		t.Errorf("Expected no y component, got %v / %v", va.VY, vb.VY)
	}
	if got := tw.reg.Ints.Get(status.CoulombPairs).Load(); got != 2 {
		t.Errorf("Expected 2 ordered pairs, got %d", got)
	}
}

func TestCoulombOppositeChargesAttract(t *testing.T) {
	tw := newTestWorld()
	a := tw.charged(0, 0, 4)
	b := tw.charged(0, 4, -4)

	NewCoulombSystem(tw.world).Update()

	va, vb := tw.velocity(a), tw.velocity(b)
	// |k*q1*q2|/d² = 16/16 = 1, toward each other
	if !near(va.VY, 1) || !near(vb.VY, -1) {
		t.Errorf("Velocities = %v / %v, want 1 / -1", va.VY, vb.VY)
	}
}

func TestCoulombSkipsCoincident(t *testing.T) {
	tw := newTestWorld()
	a := tw.charged(5, 5, 50)
	b := tw.charged(5, 5.01, 50)

	NewCoulombSystem(tw.world).Update()

	if v := tw.velocity(a); v.VX != 0 || v.VY != 0 {
		t.Errorf("Expected guard to skip, got %+v", v)
	}
	if v := tw.velocity(b); v.VX != 0 || v.VY != 0 {
		t.Errorf("Expected guard to skip, got %+v", v)
	}
}

func TestCoulombIgnoresUnchargedAndVelocityless(t *testing.T) {
	tw := newTestWorld()
	a := tw.charged(0, 0, 50)
	plain := tw.node(1, 0)
	anchor := tw.charged(0, 10, 50)
	tw.world.Components.Velocity.Remove(anchor)

	NewCoulombSystem(tw.world).Update()

	if v := tw.velocity(plain); v.VX != 0 || v.VY != 0 {
		t.Errorf("Uncharged node moved: %+v", v)
	}
	// Anchor has no velocity but still pushes a
	if v := tw.velocity(a); !near(v.VY, -25) {
		t.Errorf("Expected anchor to repel a, got %+v", v)
	}
	if tw.world.Components.Velocity.Has(anchor) {
		t.Error("Coulomb pass must not add velocity to an anchor")
	}
}

func TestSpringAntisymmetric(t *testing.T) {
	tw := newTestWorld()
	a := tw.node(0, 0)
	b := tw.node(60, 80)
	tw.world.Components.Velocity.Set(a, component.VelocityComponent{VX: 1.5, VY: -2})
	tw.world.Components.Velocity.Set(b, component.VelocityComponent{VX: 7, VY: 3})
	tw.edge(a, b, 30, 0.37)

	before := [2]component.VelocityComponent{tw.velocity(a), tw.velocity(b)}
	NewSpringSystem(tw.world, true).Update()

	da := component.VelocityComponent{VX: tw.velocity(a).VX - before[0].VX, VY: tw.velocity(a).VY - before[0].VY}
	db := component.VelocityComponent{VX: tw.velocity(b).VX - before[1].VX, VY: tw.velocity(b).VY - before[1].VY}
	if !near(da.VX, -db.VX) || !near(da.VY, -db.VY) {
		t.Errorf("Spring deltas not antisymmetric: %+v vs %+v", da, db)
	}
	// |delta| * stiffness = 70 * 0.37
	if mag := math.Hypot(da.VX, da.VY); !near(mag, 70*0.37) {
		t.Errorf("Spring magnitude = %v, want %v", mag, 70*0.37)
	}
}

func TestSpringRestFiftyAtHundred(t *testing.T) {
	tw := newTestWorld()
	a := tw.node(0, 0)
	b := tw.node(100, 0)
	tw.edge(a, b, 50, 0.1)

	NewSpringSystem(tw.world, true).Update()

	if va := tw.velocity(a); !near(va.VX, 5) {
		t.Errorf("Endpoint A vx = %v, want 5 (toward B)", va.VX)
	}
	if vb := tw.velocity(b); !near(vb.VX, -5) {
		t.Errorf("Endpoint B vx = %v, want -5 (toward A)", vb.VX)
	}
}

func TestSpringPrunesDanglingEdge(t *testing.T) {
	tw := newTestWorld()
	a := tw.node(0, 0)
	b := tw.node(100, 0)
	e := tw.edge(a, b, 50, 0.1)
	tw.world.DestroyEntity(b)

	NewSpringSystem(tw.world, true).Update()

	if v := tw.velocity(a); v.VX != 0 || v.VY != 0 {
		t.Errorf("Dangling edge applied force: %+v", v)
	}
	if !tw.world.Components.Death.Has(e) {
		t.Error("Expected dangling edge to be marked for removal")
	}
	if got := tw.reg.Ints.Get(status.EdgePruned).Load(); got != 1 {
		t.Errorf("Expected 1 pruned edge, got %d", got)
	}

	// Second pass before cull must not double count
	NewSpringSystem(tw.world, true).Update()
	if got := tw.reg.Ints.Get(status.EdgePruned).Load(); got != 1 {
		t.Errorf("Expected prune count to stay 1, got %d", got)
	}
}

func TestSpringRollsBackOneSidedWrite(t *testing.T) {
	tw := newTestWorld()
	a := tw.node(0, 0)
	b := tw.node(100, 0)
	tw.world.Components.Velocity.Set(a, component.VelocityComponent{VX: 0.1, VY: 0.2})
	tw.world.Components.Velocity.Remove(b)
	e := tw.edge(a, b, 50, 0.3)

	NewSpringSystem(tw.world, true).Update()

	if v := tw.velocity(a); v.VX != 0.1 || v.VY != 0.2 {
		t.Errorf("Expected exact rollback of A, got %+v", v)
	}
	if tw.world.Components.Velocity.Has(b) {
		t.Error("Expected B to stay without velocity")
	}
	if !tw.world.Components.Death.Has(e) {
		t.Error("Expected invalid edge to be marked")
	}
}

func TestSpringValidateOnly(t *testing.T) {
	tw := newTestWorld()
	a := tw.node(0, 0)
	b := tw.node(100, 0)
	tw.edge(a, b, 50, 0.1)
	dangling := tw.edge(a, 999, 50, 0.1)

	NewSpringSystem(tw.world, false).Update()

	if v := tw.velocity(a); v.VX != 0 {
		t.Errorf("Disabled spring force applied: %+v", v)
	}
	if !tw.world.Components.Death.Has(dangling) {
		t.Error("Disabled spring pass must still prune dangling edges")
	}
}

func TestMouseAttraction(t *testing.T) {
	tw := newTestWorld()
	tagged := tw.node(0, 0)
	tw.world.Components.MouseAttract.Set(tagged, component.MouseAttractComponent{})
	untagged := tw.node(0, 0)

	sys := NewMouseAttractSystem(tw.world)

	// No pointer reported yet
	sys.Update()
	if v := tw.velocity(tagged); v.VX != 0 {
		t.Errorf("Expected no attraction before pointer is known, got %+v", v)
	}

	tw.scene.SetPointer(0, 5)
	sys.Update()
	if v := tw.velocity(tagged); !near(v.VY, 5) || v.VX != 0 {
		t.Errorf("Expected (0,5), got %+v", v)
	}
	if v := tw.velocity(untagged); v.VY != 0 {
		t.Errorf("Untagged entity attracted: %+v", v)
	}
}

func TestDampingDecay(t *testing.T) {
	tw := newTestWorld()
	e := tw.node(0, 0)
	tw.world.Components.Velocity.Set(e, component.VelocityComponent{VX: 100, VY: -50})
	sys := NewDampingSystem(tw.world)

	prev := math.Hypot(100, 50)
	for i := 0; i < 50; i++ {
		sys.Update()
		v := tw.velocity(e)
		cur := math.Hypot(v.VX, v.VY)
		if cur >= prev {
			t.Fatalf("Tick %d: speed %v did not decrease from %v", i, cur, prev)
		}
		prev = cur
	}
}

func TestIntegration(t *testing.T) {
	tw := newTestWorld()
	e := tw.node(10, 10)
	tw.world.Components.Velocity.Set(e, component.VelocityComponent{VX: 500, VY: -250})

	NewIntegrationSystem(tw.world).Update()

	// 16ms at 0.001 conversion
	if p := tw.position(e); !near(p.X, 18) || !near(p.Y, 6) {
		t.Errorf("Position = %+v, want (18,6)", p)
	}

	tw.scene.Elapsed = 0
	NewIntegrationSystem(tw.world).Update()
	if p := tw.position(e); !near(p.X, 18) {
		t.Errorf("Zero elapsed moved entity: %+v", p)
	}
}

func TestBoundaryScenario(t *testing.T) {
	tw := newTestWorld()
	tw.scene.SetArena(100, 100)
	e := tw.node(1, 1)
	tw.world.Components.Velocity.Set(e, component.VelocityComponent{VX: -3, VY: -4})
	tw.world.Components.Boundary.Set(e, component.BoundaryExtentComponent{HalfWidth: 5, HalfHeight: 5})

	NewBoundarySystem(tw.world).Update()

	if p := tw.position(e); p.X != 5 || p.Y != 5 {
		t.Errorf("Position = %+v, want (5,5)", p)
	}
	if v := tw.velocity(e); !near(v.VX, 3*tw.params.Restitution) || !near(v.VY, 4*tw.params.Restitution) {
		t.Errorf("Velocity = %+v, want reflected and attenuated", v)
	}
	if got := tw.reg.Ints.Get(status.BoundaryBounces).Load(); got != 2 {
		t.Errorf("Expected 2 bounces, got %d", got)
	}
}

func TestBoundaryDegenerateAxis(t *testing.T) {
	tw := newTestWorld()
	tw.scene.SetArena(8, 100)
	e := tw.node(-3, 200)
	tw.world.Components.Boundary.Set(e, component.BoundaryExtentComponent{HalfWidth: 5, HalfHeight: 5})

	NewBoundarySystem(tw.world).Update()

	p := tw.position(e)
	if p.X != -3 {
		t.Errorf("Degenerate x axis should be skipped, got %v", p.X)
	}
	if p.Y != 95 {
		t.Errorf("Valid y axis should still clamp, got %v", p.Y)
	}
}

func TestBoundaryWithoutArenaPanics(t *testing.T) {
	tw := newTestWorld()
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when arena was never set")
		}
	}()
	NewBoundarySystem(tw.world).Update()
}

func TestCullRemovesMarked(t *testing.T) {
	tw := newTestWorld()
	a := tw.charged(0, 0, 1)
	b := tw.node(1, 1)
	tw.world.MarkForRemoval(a)

	NewCullSystem(tw.world).Update()

	if tw.world.Alive(a) {
		t.Error("Marked entity survived cull")
	}
	if !tw.world.Alive(b) {
		t.Error("Unmarked entity removed")
	}
	if got := tw.reg.Ints.Get(status.EntityRemoved).Load(); got != 1 {
		t.Errorf("Expected 1 removal, got %d", got)
	}
}

func TestSystemPriorityOrder(t *testing.T) {
	tw := newTestWorld()
	tw.scene.SetArena(100, 100)
	// Register in reverse to check sorting
	tw.world.AddSystem(NewCullSystem(tw.world))
	tw.world.AddSystem(NewBoundarySystem(tw.world))
	tw.world.AddSystem(NewIntegrationSystem(tw.world))
	tw.world.AddSystem(NewDampingSystem(tw.world))
	tw.world.AddSystem(NewCoulombSystem(tw.world))
	tw.world.AddSystem(NewSpringSystem(tw.world, true))
	tw.world.AddSystem(NewMouseAttractSystem(tw.world))

	want := []int{
		constant.PriorityMouse,
		constant.PrioritySpring,
		constant.PriorityCoulomb,
		constant.PriorityDamping,
		constant.PriorityIntegration,
		constant.PriorityBoundary,
		constant.PriorityCull,
	}
	systems := tw.world.Systems()
	if len(systems) != len(want) {
		t.Fatalf("Expected %d systems, got %d", len(want), len(systems))
	}
	for i, s := range systems {
		if s.Priority() != want[i] {
			t.Errorf("System %d priority = %d, want %d", i, s.Priority(), want[i])
		}
	}
}
