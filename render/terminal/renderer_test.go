package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/sim"
)

type fakeScene struct {
	pointerX, pointerY float64
	pointerCalls       int
	arena              core.Extent
	lost               []core.Entity
	paused             bool
}

func (f *fakeScene) SetPointerPosition(x, y float64) {
	f.pointerX, f.pointerY = x, y
	f.pointerCalls++
}

func (f *fakeScene) SetArenaExtent(w, h float64) error {
	f.arena = core.Extent{Width: w, Height: h}
	return nil
}

func (f *fakeScene) ReportVisualLost(e core.Entity) { f.lost = append(f.lost, e) }
func (f *fakeScene) TogglePause() bool              { f.paused = !f.paused; return f.paused }
func (f *fakeScene) Paused() bool                   { return f.paused }

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		sb.WriteRune(runeAt(screen, x, y))
	}
	return sb.String()
}

func TestAttachSizesArena(t *testing.T) {
	screen := newTestScreen(t, 40, 11)
	scene := &fakeScene{}
	r := New(screen, scene, Options{})

	if err := r.Attach(); err != nil {
		t.Fatal(err)
	}
	// Bottom row is the status line
	want := core.Extent{Width: 400, Height: 200}
	if scene.arena != want {
		t.Errorf("arena = %+v, want %+v", scene.arena, want)
	}
}

func TestCellMapping(t *testing.T) {
	screen := newTestScreen(t, 40, 11)
	r := New(screen, &fakeScene{}, Options{})

	tests := []struct {
		x, y   float64
		cx, cy int
		ok     bool
	}{
		{0, 0, 0, 0, true},
		{15, 45, 1, 2, true},
		{399.9, 199.9, 39, 9, true},
		{400, 10, 40, 0, false},
		{10, 200, 1, 10, false},
		{-1, 5, -1, 0, false},
	}
	for _, tt := range tests {
		cx, cy, ok := r.ToCell(tt.x, tt.y)
		if cx != tt.cx || cy != tt.cy || ok != tt.ok {
			t.Errorf("ToCell(%v,%v) = (%d,%d,%v), want (%d,%d,%v)", tt.x, tt.y, cx, cy, ok, tt.cx, tt.cy, tt.ok)
		}
	}

	x, y := r.ToScene(3, 4)
	if x != 35 || y != 90 {
		t.Errorf("ToScene(3,4) = (%v,%v), want (35,90)", x, y)
	}
}

func TestRenderDrawsNodesEdgesAndStatus(t *testing.T) {
	screen := newTestScreen(t, 40, 11)
	r := New(screen, &fakeScene{}, Options{})

	frame := core.Frame{
		Number: 3,
		Nodes: []core.NodePosition{
			{Entity: 1, X: 15, Y: 50},
			{Entity: 2, X: 105, Y: 50},
		},
		Edges: []core.EdgeLink{{Entity: 3, A: 1, B: 2}},
	}
	r.Render(frame)

	if got := runeAt(screen, 1, 2); got != nodeChar {
		t.Errorf("node 1 cell = %q", got)
	}
	if got := runeAt(screen, 10, 2); got != nodeChar {
		t.Errorf("node 2 cell = %q", got)
	}
	for x := 2; x < 10; x++ {
		if got := runeAt(screen, x, 2); got != edgeChar {
			t.Errorf("edge cell (%d,2) = %q", x, got)
		}
	}
	status := rowText(screen, 10)
	if !strings.Contains(status, "frame 3") || !strings.Contains(status, "nodes 2") || !strings.Contains(status, "running") {
		t.Errorf("status line = %q", status)
	}
}

func TestEdgeToggle(t *testing.T) {
	screen := newTestScreen(t, 40, 11)
	r := New(screen, &fakeScene{}, Options{})

	r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone))
	r.Render(core.Frame{
		Nodes: []core.NodePosition{{Entity: 1, X: 15, Y: 50}, {Entity: 2, X: 105, Y: 50}},
		Edges: []core.EdgeLink{{Entity: 3, A: 1, B: 2}},
	})
	if got := runeAt(screen, 5, 2); got == edgeChar {
		t.Error("edges drawn while hidden")
	}
}

func TestMouseSetsPointer(t *testing.T) {
	screen := newTestScreen(t, 40, 11)
	scene := &fakeScene{}
	r := New(screen, scene, Options{})

	if !r.HandleEvent(tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone)) {
		t.Fatal("mouse event should not quit")
	}
	if scene.pointerCalls != 1 || scene.pointerX != 45 || scene.pointerY != 50 {
		t.Errorf("pointer = (%v,%v) after %d calls", scene.pointerX, scene.pointerY, scene.pointerCalls)
	}

	r.Render(core.Frame{Arena: r.ArenaFor(40, 11)})
	if got := runeAt(screen, 4, 2); got != pointerChar {
		t.Errorf("pointer cell = %q", got)
	}
	if status := rowText(screen, 10); !strings.Contains(status, "ptr 45,50") {
		t.Errorf("status line = %q", status)
	}

	// Pointer outside the frame's arena is not reported
	r.Render(core.Frame{Arena: core.Extent{Width: 20, Height: 20}})
	if status := rowText(screen, 10); !strings.Contains(status, "ptr -") {
		t.Errorf("status line = %q", status)
	}
}

func TestResizeUpdatesArena(t *testing.T) {
	screen := newTestScreen(t, 40, 11)
	scene := &fakeScene{}
	r := New(screen, scene, Options{CellWidth: 5, CellHeight: 10})

	screen.SetSize(60, 21)
	r.HandleEvent(tcell.NewEventResize(60, 21))
	if want := (core.Extent{Width: 300, Height: 200}); scene.arena != want {
		t.Errorf("arena = %+v, want %+v", scene.arena, want)
	}
}

func TestKeys(t *testing.T) {
	screen := newTestScreen(t, 40, 11)
	scene := &fakeScene{}
	r := New(screen, scene, Options{})

	tests := []struct {
		name        string
		ev          *tcell.EventKey
		keepRunning bool
	}{
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false},
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"other rune continues", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
		{"arrow continues", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.HandleEvent(tt.ev); got != tt.keepRunning {
				t.Errorf("HandleEvent = %v, want %v", got, tt.keepRunning)
			}
		})
	}

	r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	if !scene.paused {
		t.Error("p should pause")
	}
	r.Render(core.Frame{})
	if !strings.Contains(rowText(screen, 10), "paused") {
		t.Errorf("status should show pause, got %q", rowText(screen, 10))
	}
}

func TestDropNearest(t *testing.T) {
	screen := newTestScreen(t, 40, 11)
	scene := &fakeScene{}
	r := New(screen, scene, Options{})

	// Nothing rendered yet
	r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	if len(scene.lost) != 0 {
		t.Fatalf("drop without nodes reported %v", scene.lost)
	}

	r.Render(core.Frame{Nodes: []core.NodePosition{
		{Entity: 4, X: 20, Y: 20},
		{Entity: 7, X: 300, Y: 150},
	}})
	r.HandleEvent(tcell.NewEventMouse(29, 7, tcell.ButtonNone, tcell.ModNone))
	r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))

	if len(scene.lost) != 1 || scene.lost[0] != 7 {
		t.Errorf("lost = %v, want [7]", scene.lost)
	}
}

func TestRendererWithSimulation(t *testing.T) {
	screen := newTestScreen(t, 40, 11)
	s, err := sim.New(sim.Options{})
	if err != nil {
		t.Fatal(err)
	}
	r := New(screen, s, Options{})
	if err := r.Attach(); err != nil {
		t.Fatal(err)
	}
	s.AddRenderer(r)

	e := s.Spawn(sim.At(55, 30).WithBoundary(1, 1))
	if err := s.TickElapsed(16 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if got := runeAt(screen, 5, 1); got != nodeChar {
		t.Errorf("node cell = %q", got)
	}

	// Dropping from the screen removes the node on the next tick
	r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	if err := s.TickElapsed(16 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	frame := s.Frame()
	if _, ok := frame.Lookup(e); ok {
		t.Error("dropped node still in frame")
	}
	if s.Arena() != r.ArenaFor(40, 11) {
		t.Errorf("arena = %+v", s.Arena())
	}
}

func TestPollerExitsWhenStopped(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(40, 11)
	r := New(screen, &fakeScene{}, Options{})

	// Unbuffered and never read: the poller blocks on its first send until done is closed
	done := make(chan struct{})
	events := r.pollEvents(done, 0)
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	close(done)
	screen.Fini()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("poller did not exit")
		}
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	screen := newTestScreen(t, 40, 11)
	r := New(screen, &fakeScene{}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(finished)
	}()
	cancel()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
