package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// HandleEvent applies one input event; returns false when the user asked to quit
func (r *Renderer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.handleKey(ev)

	case *tcell.EventMouse:
		cx, cy := ev.Position()
		x, y := r.ToScene(cx, cy)
		r.mu.Lock()
		r.pointerX, r.pointerY, r.pointerSet = x, y, true
		r.mu.Unlock()
		r.scene.SetPointerPosition(x, y)

	case *tcell.EventResize:
		w, h := ev.Size()
		if err := r.resize(w, h); err != nil {
			r.logger.Warn("arena resize rejected", "cols", w, "rows", h, "error", err)
		}
		r.screen.Sync()
	}
	return true
}

func (r *Renderer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'p':
		paused := r.scene.TogglePause()
		r.logger.Debug("pause toggled", "paused", paused)
	case 'e':
		r.mu.Lock()
		r.showEdges = !r.showEdges
		r.mu.Unlock()
	case 'd':
		r.dropNearest()
	}
	return true
}

// dropNearest removes the visual of the node closest to the pointer, or to the screen center without one
func (r *Renderer) dropNearest() {
	r.mu.Lock()
	x, y, set := r.pointerX, r.pointerY, r.pointerSet
	r.mu.Unlock()
	if !set {
		w, h := r.screen.Size()
		x, y = r.ToScene(w/2, max(h-1, 0)/2)
	}

	e, ok := r.nearest(x, y)
	if !ok {
		return
	}
	r.logger.Debug("visual dropped", "entity", uint64(e))
	r.scene.ReportVisualLost(e)
}

func (r *Renderer) resize(w, h int) error {
	ext := r.ArenaFor(w, h)
	return r.scene.SetArenaExtent(ext.Width, ext.Height)
}

// Run polls screen events until quit is requested or ctx ends
// The screen must be finalized by the caller after Run returns
func (r *Renderer) Run(ctx context.Context) {
	done := make(chan struct{})
	defer close(done)
	events := r.pollEvents(done, 100)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !r.HandleEvent(ev) {
				return
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is closed
// The returned channel is closed when the poller exits
func (r *Renderer) pollEvents(done <-chan struct{}, buffer int) <-chan tcell.Event {
	events := make(chan tcell.Event, buffer)
	go func() {
		defer close(events)
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}
