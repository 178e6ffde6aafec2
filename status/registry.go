package status

import (
	"fmt"
	"sync/atomic"
)

// Metric keys published by the simulation
const (
	TickCount       = "tick.count"
	TickRejected    = "tick.rejected"
	TickDurationUs  = "tick.duration_us"
	TickPeakUs      = "tick.peak_us"
	TickOverBudget  = "tick.over_budget"
	EntityNodes     = "entity.nodes"
	EntityEdges     = "entity.edges"
	EntityRemoved   = "entity.removed"
	EdgePruned      = "edge.pruned"
	CoulombPairs    = "coulomb.pairs"
	BoundaryBounces = "boundary.bounces"
	SimState        = "sim.state"
	SimPaused       = "sim.paused"
	StreamClients   = "stream.clients"
	StreamSkipped   = "stream.skipped"
)

// Registry is the central metrics facade
// Systems cache pointers during init; Update loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot renders every metric as a string keyed by name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = fmt.Sprint(v.Load()) })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = fmt.Sprint(v.Load()) })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = fmt.Sprintf("%.3f", v.Get()) })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
