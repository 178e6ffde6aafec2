package component

import "github.com/lixenwraith/forcegraph/core"

// EdgeComponent is a spring between two nodes
// A and B are weak references resolved through the stores every tick; the edge owns neither node
type EdgeComponent struct {
	A, B       core.Entity
	RestLength float64
	Stiffness  float64
}
