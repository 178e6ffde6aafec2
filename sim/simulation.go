package sim

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/forcegraph/component"
	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/engine"
	"github.com/lixenwraith/forcegraph/parameter"
	"github.com/lixenwraith/forcegraph/status"
	"github.com/lixenwraith/forcegraph/system"
	"github.com/lixenwraith/forcegraph/vmath"
)

// State is the tick driver state
type State int32

const (
	StateIdle State = iota
	StateStepping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStepping:
		return "stepping"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Options configures a Simulation; zero values select defaults
type Options struct {
	// Params defaults to parameter.DefaultPhysics
	Params *parameter.Physics

	// Arena defaults to parameter.ArenaWidth x parameter.ArenaHeight
	Arena core.Extent

	// Clock defaults to the system monotonic clock
	Clock engine.TimeProvider

	// Logger defaults to a discarding logger
	Logger *slog.Logger

	// Status defaults to a fresh registry
	Status *status.Registry

	// FrameBudget flags ticks slower than this in metrics; zero disables the check
	FrameBudget time.Duration
}

// Simulation owns one world and drives it one tick at a time
type Simulation struct {
	world  *engine.World
	scene  *engine.SceneResource
	params *parameter.Physics
	status *status.Registry
	logger *slog.Logger
	clock  *engine.PausableClock
	budget time.Duration

	stepping atomic.Bool

	// Guarded by stepping
	lastTick time.Time
	ticked   bool

	frameMu sync.RWMutex
	frame   core.Frame

	renderMu  sync.RWMutex
	renderers []Renderer

	statTicks      *atomic.Int64
	statRejected   *atomic.Int64
	statOverBudget *atomic.Int64
	statNodes      *atomic.Int64
	statEdges      *atomic.Int64
	statPruned     *atomic.Int64
	statRemoved    *atomic.Int64
	statBounces    *atomic.Int64
	statDuration   *status.AtomicFloat
	statPeak       *status.AtomicFloat
	statState      *status.AtomicString
	statPaused     *atomic.Bool
}

// New creates a simulation with the force passes selected by Params.Forces
func New(opts Options) (*Simulation, error) {
	params := opts.Params
	if params == nil {
		params = parameter.DefaultPhysics()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	arena := opts.Arena
	if arena.Width == 0 && arena.Height == 0 {
		arena = core.Extent{Width: parameter.ArenaWidth, Height: parameter.ArenaHeight}
	}
	if err := validateExtent(arena.Width, arena.Height); err != nil {
		return nil, err
	}

	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	world := engine.NewWorld()
	scene := engine.InitResources(world, params, reg)
	scene.SetArena(arena.Width, arena.Height)

	s := &Simulation{
		world:  world,
		scene:  scene,
		params: params,
		status: reg,
		logger: logger,
		clock:  engine.NewPausableClock(opts.Clock),
		budget: opts.FrameBudget,

		statTicks:      reg.Ints.Get(status.TickCount),
		statRejected:   reg.Ints.Get(status.TickRejected),
		statOverBudget: reg.Ints.Get(status.TickOverBudget),
		statNodes:      reg.Ints.Get(status.EntityNodes),
		statEdges:      reg.Ints.Get(status.EntityEdges),
		statPruned:     reg.Ints.Get(status.EdgePruned),
		statRemoved:    reg.Ints.Get(status.EntityRemoved),
		statBounces:    reg.Ints.Get(status.BoundaryBounces),
		statDuration:   reg.Floats.Get(status.TickDurationUs),
		statPeak:       reg.Floats.Get(status.TickPeakUs),
		statState:      reg.Strings.Get(status.SimState),
		statPaused:     reg.Bools.Get(status.SimPaused),
	}
	s.statState.Store(StateIdle.String())
	s.registerSystems()
	return s, nil
}

// registerSystems installs the passes in tick order; priorities enforce the order regardless of call order
func (s *Simulation) registerSystems() {
	f := s.params.Forces
	w := s.world

	if f.Mouse {
		w.AddSystem(system.NewMouseAttractSystem(w))
	}
	// Spring always runs so dangling edges are pruned even with the force disabled
	w.AddSystem(system.NewSpringSystem(w, f.Spring))
	if f.Coulomb {
		w.AddSystem(system.NewCoulombSystem(w))
	}
	if f.Damping {
		w.AddSystem(system.NewDampingSystem(w))
	}
	w.AddSystem(system.NewIntegrationSystem(w))
	if f.Boundary {
		w.AddSystem(system.NewBoundarySystem(w))
	}
	w.AddSystem(system.NewCullSystem(w))
}

// Spawn creates a node from the bundle and returns its entity
func (s *Simulation) Spawn(b Bundle) core.Entity {
	var e core.Entity
	s.world.RunSafe(func() {
		c := &s.world.Components
		e = s.world.CreateEntity()

		if b.Position != nil {
			c.Position.Set(e, *b.Position)
		}
		vel := component.VelocityComponent{}
		if b.Velocity != nil {
			vel = *b.Velocity
		}
		c.Velocity.Set(e, vel)
		if b.Charge != nil {
			c.Charge.Set(e, *b.Charge)
		}
		if b.Boundary != nil {
			c.Boundary.Set(e, *b.Boundary)
		}
		if b.MouseAttract {
			c.MouseAttract.Set(e, component.MouseAttractComponent{})
		}
	})
	return e
}

// ConnectEdge creates a spring between two nodes that both have a position
func (s *Simulation) ConnectEdge(a, b core.Entity, restLength, stiffness float64) (core.Entity, error) {
	if a == b {
		return core.NoEntity, fmt.Errorf("connect %d-%d: %w", a, b, ErrSelfLoop)
	}
	if !vmath.Finite(restLength) || !vmath.Finite(stiffness) || stiffness < 0 {
		return core.NoEntity, fmt.Errorf("connect %d-%d: rest %g, stiffness %g: %w", a, b, restLength, stiffness, ErrInvalidEdge)
	}

	var (
		e   core.Entity
		err error
	)
	s.world.RunSafe(func() {
		c := &s.world.Components
		for _, endpoint := range [2]core.Entity{a, b} {
			if !c.Position.Has(endpoint) {
				err = fmt.Errorf("connect %d-%d: entity %d: %w", a, b, endpoint, ErrMissingPosition)
				return
			}
		}
		e = s.world.CreateEntity()
		c.Edge.Set(e, component.EdgeComponent{
			A:          a,
			B:          b,
			RestLength: restLength,
			Stiffness:  stiffness,
		})
	})
	if err != nil {
		return core.NoEntity, err
	}
	return e, nil
}

// Despawn destroys an entity immediately; edges referencing it are pruned on the next tick
func (s *Simulation) Despawn(e core.Entity) {
	s.world.RunSafe(func() {
		s.world.DestroyEntity(e)
	})
}

// ReportVisualLost marks an entity whose visual vanished; it is removed at the end of the next tick
func (s *Simulation) ReportVisualLost(e core.Entity) {
	s.world.RunSafe(func() {
		if !s.world.Alive(e) {
			return
		}
		s.world.MarkForRemoval(e)
	})
	s.logger.Debug("visual lost", "entity", uint64(e))
}

// SetPointerPosition records the pointer for the next tick; non-finite coordinates are ignored
func (s *Simulation) SetPointerPosition(x, y float64) {
	if !vmath.Finite(x) || !vmath.Finite(y) {
		s.logger.Debug("pointer ignored", "x", x, "y", y)
		return
	}
	s.world.RunSafe(func() {
		s.scene.SetPointer(x, y)
	})
}

// SetArenaExtent sets the containment rectangle for the next tick
func (s *Simulation) SetArenaExtent(width, height float64) error {
	if err := validateExtent(width, height); err != nil {
		return err
	}
	s.world.RunSafe(func() {
		s.scene.SetArena(width, height)
	})
	return nil
}

// Arena returns the current containment rectangle
func (s *Simulation) Arena() core.Extent {
	var ext core.Extent
	s.world.RunSafe(func() {
		ext = s.scene.Arena
	})
	return ext
}

// ArenaStatistics renders the arena dimensions for diagnostics
func (s *Simulation) ArenaStatistics() string {
	var (
		ext core.Extent
		set bool
	)
	s.world.RunSafe(func() {
		ext, set = s.scene.Arena, s.scene.ArenaSet
	})
	if !set {
		return "Arena not initialized"
	}
	return fmt.Sprintf("Width %g\nHeight %g", ext.Width, ext.Height)
}

// RunSafe executes fn with exclusive access to the world, for direct component attach/detach
func (s *Simulation) RunSafe(fn func(w *engine.World)) {
	s.world.RunSafe(func() {
		fn(s.world)
	})
}

// AddRenderer registers a frame consumer; renderers run in registration order
func (s *Simulation) AddRenderer(r Renderer) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	s.renderers = append(s.renderers, r)
}

// PositionsSnapshot returns every positioned entity in ascending entity order
func (s *Simulation) PositionsSnapshot() []core.NodePosition {
	var nodes []core.NodePosition
	s.world.RunSafe(func() {
		nodes = s.collectNodes()
	})
	return nodes
}

// Frame returns the frame produced by the last completed tick
func (s *Simulation) Frame() core.Frame {
	s.frameMu.RLock()
	defer s.frameMu.RUnlock()
	return s.frame
}

// State reports whether a tick is running
func (s *Simulation) State() State {
	if s.stepping.Load() {
		return StateStepping
	}
	return StateIdle
}

// Metrics returns the registry the simulation publishes to
func (s *Simulation) Metrics() *status.Registry {
	return s.status
}

// Pause freezes scene time for Tick; TickElapsed is unaffected
func (s *Simulation) Pause() {
	s.clock.Pause()
	s.statPaused.Store(true)
}

// Resume continues scene time
func (s *Simulation) Resume() {
	s.clock.Resume()
	s.statPaused.Store(false)
}

// TogglePause flips the pause state and reports whether the simulation is now paused
func (s *Simulation) TogglePause() bool {
	paused := s.clock.Toggle()
	s.statPaused.Store(paused)
	return paused
}

// PausedFor returns the cumulative time spent paused, including a pause in progress
func (s *Simulation) PausedFor() time.Duration { return s.clock.TotalPauseDuration() }

// Paused reports the pause state
func (s *Simulation) Paused() bool { return s.clock.IsPaused() }

// Tick advances the simulation by the clock time since the previous tick, zero on the first call
func (s *Simulation) Tick() error {
	if !s.stepping.CompareAndSwap(false, true) {
		return s.reject()
	}
	defer s.stepping.Store(false)

	now := s.clock.Now()
	var elapsed time.Duration
	if s.ticked {
		elapsed = max(now.Sub(s.lastTick), 0)
	}
	s.lastTick, s.ticked = now, true

	s.step(elapsed)
	return nil
}

// TickElapsed advances the simulation by the given duration; negative hints count as zero
func (s *Simulation) TickElapsed(elapsed time.Duration) error {
	if !s.stepping.CompareAndSwap(false, true) {
		return s.reject()
	}
	defer s.stepping.Store(false)

	// Keep Tick's clock reference in step so mixing both forms does not double count
	s.lastTick, s.ticked = s.clock.Now(), true

	s.step(max(elapsed, 0))
	return nil
}

func (s *Simulation) reject() error {
	s.statRejected.Add(1)
	s.logger.Debug("tick rejected", "reason", ErrTickInProgress)
	return ErrTickInProgress
}

// step runs one full tick; the caller holds the stepping flag
func (s *Simulation) step(elapsed time.Duration) {
	s.statState.Store(StateStepping.String())
	defer s.statState.Store(StateIdle.String())

	start := time.Now()
	prunedBefore := s.statPruned.Load()
	removedBefore := s.statRemoved.Load()

	var frame core.Frame
	s.world.RunSafe(func() {
		s.scene.Elapsed = elapsed
		s.world.UpdateLocked()
		s.scene.FrameNumber++

		frame = core.Frame{
			Number:  s.scene.FrameNumber,
			Elapsed: elapsed,
			Arena:   s.scene.Arena,
			Nodes:   s.collectNodes(),
			Edges:   s.collectEdges(),
			Bounces: int(s.statBounces.Load()),
		}
	})

	duration := time.Since(start)
	s.statTicks.Add(1)
	s.statNodes.Store(int64(len(frame.Nodes)))
	s.statEdges.Store(int64(len(frame.Edges)))
	s.statDuration.Set(float64(duration.Microseconds()))
	s.statPeak.StoreMax(float64(duration.Microseconds()))

	if pruned := s.statPruned.Load() - prunedBefore; pruned > 0 {
		s.logger.Debug("edges pruned", "frame", frame.Number, "count", pruned)
	}
	if removed := s.statRemoved.Load() - removedBefore; removed > 0 {
		s.logger.Debug("entities removed", "frame", frame.Number, "count", removed)
	}
	if s.budget > 0 && duration > s.budget {
		s.statOverBudget.Add(1)
		s.logger.Debug("tick over budget", "frame", frame.Number, "duration", duration, "budget", s.budget)
	}

	s.frameMu.Lock()
	s.frame = frame
	s.frameMu.Unlock()

	s.renderMu.RLock()
	renderers := make([]Renderer, len(s.renderers))
	copy(renderers, s.renderers)
	s.renderMu.RUnlock()

	for _, r := range renderers {
		r.Render(frame)
	}
}

// collectNodes requires the world lock
func (s *Simulation) collectNodes() []core.NodePosition {
	c := &s.world.Components
	entities := s.world.Query().With(c.Position).Execute()
	nodes := make([]core.NodePosition, 0, len(entities))
	for _, e := range entities {
		pos, ok := c.Position.Get(e)
		if !ok {
			continue
		}
		nodes = append(nodes, core.NodePosition{Entity: e, X: pos.X, Y: pos.Y})
	}
	return nodes
}

// collectEdges requires the world lock
// Edges whose endpoint was removed this tick are left out; the spring pass prunes them next tick
func (s *Simulation) collectEdges() []core.EdgeLink {
	c := &s.world.Components
	entities := s.world.Query().With(c.Edge).Execute()
	edges := make([]core.EdgeLink, 0, len(entities))
	for _, e := range entities {
		edge, ok := c.Edge.Get(e)
		if !ok || !c.Position.Has(edge.A) || !c.Position.Has(edge.B) {
			continue
		}
		edges = append(edges, core.EdgeLink{Entity: e, A: edge.A, B: edge.B})
	}
	return edges
}

func validateExtent(width, height float64) error {
	if !vmath.Finite(width) || !vmath.Finite(height) || width < 0 || height < 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidExtent, width, height)
	}
	return nil
}
