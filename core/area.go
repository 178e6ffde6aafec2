package core

// Extent represents a rectangular size in scene units, origin at (0,0)
type Extent struct {
	Width, Height float64
}

// Contains reports whether (x, y) lies within [0, Width] x [0, Height]
func (e Extent) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= e.Width && y <= e.Height
}
