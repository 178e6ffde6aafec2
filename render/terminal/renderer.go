// Package terminal draws simulation frames on a tcell screen and feeds pointer and resize input back
package terminal

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/sim"
	"github.com/lixenwraith/forcegraph/vmath"
)

// Cell geometry in scene units; terminal cells are roughly twice as tall as wide
const (
	DefaultCellWidth  = 10.0
	DefaultCellHeight = 20.0
)

// Glyphs
const (
	nodeChar    = '●'
	edgeChar    = '·'
	pointerChar = '+'
)

var (
	styleNode    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleEdge    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePointer = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// Scene is the simulation surface the terminal front end drives
type Scene interface {
	sim.PointerSink
	sim.VisualLossReporter
	TogglePause() bool
	Paused() bool
}

// Options tunes the scene-to-cell mapping
type Options struct {
	CellWidth  float64
	CellHeight float64
	Logger     *slog.Logger
}

// Renderer maps frames onto a tcell screen
// The bottom row is reserved for the status line and excluded from the arena
type Renderer struct {
	screen tcell.Screen
	scene  Scene
	logger *slog.Logger

	cellW, cellH float64

	mu         sync.Mutex
	last       core.Frame
	pointerX   float64
	pointerY   float64
	pointerSet bool
	showEdges  bool
}

// New creates a renderer over an initialized screen
func New(screen tcell.Screen, scene Scene, opts Options) *Renderer {
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = DefaultCellHeight
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		screen:    screen,
		scene:     scene,
		logger:    opts.Logger,
		cellW:     opts.CellWidth,
		cellH:     opts.CellHeight,
		showEdges: true,
	}
}

// Attach enables mouse reporting and sizes the arena to the current screen
func (r *Renderer) Attach() error {
	r.screen.EnableMouse(tcell.MouseMotionEvents)
	r.screen.HideCursor()
	w, h := r.screen.Size()
	return r.resize(w, h)
}

// ArenaFor returns the scene extent covered by a w x h cell screen
func (r *Renderer) ArenaFor(w, h int) core.Extent {
	rows := max(h-1, 0)
	return core.Extent{Width: float64(w) * r.cellW, Height: float64(rows) * r.cellH}
}

// ToCell maps scene coordinates to a cell; ok is false outside the drawable area
func (r *Renderer) ToCell(x, y float64) (cx, cy int, ok bool) {
	cx = int(math.Floor(x / r.cellW))
	cy = int(math.Floor(y / r.cellH))
	w, h := r.screen.Size()
	return cx, cy, cx >= 0 && cy >= 0 && cx < w && cy < h-1
}

// ToScene maps a cell to the scene coordinates of its center
func (r *Renderer) ToScene(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * r.cellW, (float64(cy) + 0.5) * r.cellH
}

// Render draws one frame and presents it
func (r *Renderer) Render(frame core.Frame) {
	r.mu.Lock()
	r.last = frame
	showEdges := r.showEdges
	px, py, pset := r.pointerX, r.pointerY, r.pointerSet
	r.mu.Unlock()

	r.screen.Clear()

	if showEdges {
		for _, edge := range frame.Edges {
			a, okA := frame.Lookup(edge.A)
			b, okB := frame.Lookup(edge.B)
			if !okA || !okB {
				continue
			}
			r.drawEdge(a, b)
		}
	}

	for _, n := range frame.Nodes {
		if cx, cy, ok := r.ToCell(n.X, n.Y); ok {
			r.screen.SetContent(cx, cy, nodeChar, nil, styleNode)
		}
	}

	if pset {
		if cx, cy, ok := r.ToCell(px, py); ok {
			r.screen.SetContent(cx, cy, pointerChar, nil, stylePointer)
		}
	}

	r.drawStatus(frame, px, py, pset)
	r.screen.Show()
}

func (r *Renderer) drawEdge(a, b core.NodePosition) {
	tr := vmath.NewGridTraverser(a.X/r.cellW, a.Y/r.cellH, b.X/r.cellW, b.Y/r.cellH)
	w, h := r.screen.Size()
	for tr.Next() {
		cx, cy := tr.Pos()
		if cx < 0 || cy < 0 || cx >= w || cy >= h-1 {
			continue
		}
		r.screen.SetContent(cx, cy, edgeChar, nil, styleEdge)
	}
}

func (r *Renderer) drawStatus(frame core.Frame, px, py float64, pset bool) {
	w, h := r.screen.Size()
	if h == 0 {
		return
	}
	state := "running"
	if r.scene.Paused() {
		state = "paused"
	}
	pointer := "-"
	if pset && frame.Arena.Contains(px, py) {
		pointer = fmt.Sprintf("%.0f,%.0f", px, py)
	}
	line := fmt.Sprintf(" frame %d  nodes %d  edges %d  ptr %s  %s  [p]ause [e]dges [d]rop [q]uit",
		frame.Number, len(frame.Nodes), len(frame.Edges), pointer, state)

	x := 0
	for _, ch := range line {
		if x >= w {
			break
		}
		r.screen.SetContent(x, h-1, ch, nil, styleStatus)
		x++
	}
	for ; x < w; x++ {
		r.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}
}

// nearest returns the last-frame node closest to (x, y)
func (r *Renderer) nearest(x, y float64) (core.Entity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	best, bestDist := core.NoEntity, math.Inf(1)
	for _, n := range r.last.Nodes {
		dx, dy := n.X-x, n.Y-y
		if d := dx*dx + dy*dy; d < bestDist {
			best, bestDist = n.Entity, d
		}
	}
	return best, best != core.NoEntity
}
