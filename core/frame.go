package core

import "time"

// NodePosition is one entry of a positions snapshot
type NodePosition struct {
	Entity Entity
	X, Y   float64
}

// EdgeLink is one spring constraint as exported to renderers
type EdgeLink struct {
	Entity Entity
	A, B   Entity
}

// Frame is the read-only post-tick state handed to renderers
// Nodes and Edges are sorted by entity and freshly allocated per tick; renderers must treat them as read-only
// Every edge endpoint appears in Nodes
type Frame struct {
	Number  int64
	Elapsed time.Duration
	Arena   Extent
	Nodes   []NodePosition
	Edges   []EdgeLink

	// Bounces counts boundary contacts during this tick
	Bounces int
}

// Lookup returns the node position for e using binary search over the sorted Nodes slice
func (f *Frame) Lookup(e Entity) (NodePosition, bool) {
	lo, hi := 0, len(f.Nodes)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if f.Nodes[mid].Entity < e {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(f.Nodes) && f.Nodes[lo].Entity == e {
		return f.Nodes[lo], true
	}
	return NodePosition{}, false
}
