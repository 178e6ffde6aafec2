package vmath

import (
	"math"
)

// GridTraverser is a zero-allocation iterator over every grid cell a segment crosses (supercover DDA)
// Coordinates are continuous grid units; cell (i, j) spans [i, i+1) x [j, j+1)
type GridTraverser struct {
	currX, currY     int
	targetX, targetY int
	stepX, stepY     int

	tMaxX, tMaxY     float64
	tDeltaX, tDeltaY float64

	started bool
	done    bool
}

// NewGridTraverser creates an iterator from (x1, y1) to (x2, y2)
func NewGridTraverser(x1, y1, x2, y2 float64) GridTraverser {
	t := GridTraverser{
		currX: int(math.Floor(x1)), currY: int(math.Floor(y1)),
		targetX: int(math.Floor(x2)), targetY: int(math.Floor(y2)),
	}
	t.stepX, t.tMaxX, t.tDeltaX = axisSetup(x1, x2)
	t.stepY, t.tMaxY, t.tDeltaY = axisSetup(y1, y2)
	return t
}

// axisSetup returns step direction, parametric distance to the first cell edge, and per-cell increment
func axisSetup(from, to float64) (step int, tMax, tDelta float64) {
	d := to - from
	if d == 0 {
		return 1, math.Inf(1), 0
	}
	frac := from - math.Floor(from)
	if d > 0 {
		tDelta = 1 / d
		return 1, (1 - frac) * tDelta, tDelta
	}
	tDelta = -1 / d
	return -1, frac * tDelta, tDelta
}

// Next advances to the next cell; returns false after the target cell was produced
func (t *GridTraverser) Next() bool {
	if t.done {
		return false
	}
	if !t.started {
		t.started = true
		return true
	}

	if t.currX == t.targetX && t.currY == t.targetY {
		t.done = true
		return false
	}

	switch {
	case t.tMaxX < t.tMaxY:
		if t.currX != t.targetX {
			t.stepAxisX()
		} else {
			t.stepAxisY()
		}
	case t.tMaxX > t.tMaxY:
		if t.currY != t.targetY {
			t.stepAxisY()
		} else {
			t.stepAxisX()
		}
	default:
		// Exact corner crossing
		if t.currX != t.targetX {
			t.stepAxisX()
		}
		if t.currY != t.targetY {
			t.stepAxisY()
		}
	}
	return true
}

func (t *GridTraverser) stepAxisX() {
	t.currX += t.stepX
	t.tMaxX += t.tDeltaX
}

func (t *GridTraverser) stepAxisY() {
	t.currY += t.stepY
	t.tMaxY += t.tDeltaY
}

// Pos returns the current grid cell
func (t *GridTraverser) Pos() (int, int) {
	return t.currX, t.currY
}
