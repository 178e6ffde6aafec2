package component

// BoundaryExtentComponent is the half-size of the entity footprint
// Containment keeps position ± extent inside the arena
type BoundaryExtentComponent struct {
	HalfWidth, HalfHeight float64
}
