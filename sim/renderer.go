package sim

import "github.com/lixenwraith/forcegraph/core"

// Renderer consumes post-tick frames
// Render runs on the ticking goroutine after the world lock is released;
// it may call any Simulation setter but a nested Tick is rejected
type Renderer interface {
	Render(frame core.Frame)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(frame core.Frame)

func (f RendererFunc) Render(frame core.Frame) { f(frame) }

// VisualLossReporter is the capability handed to renderers that can lose a node's visual
type VisualLossReporter interface {
	ReportVisualLost(e core.Entity)
}

// PointerSink receives pointer and arena updates from an input surface
type PointerSink interface {
	SetPointerPosition(x, y float64)
	SetArenaExtent(width, height float64) error
}
