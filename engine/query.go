package engine

import (
	"slices"
	"sort"

	"github.com/lixenwraith/forcegraph/core"
)

// QueryBuilder provides a fluent interface for querying entities based on component intersection
// The query starts from the smallest store and filters through larger ones
type QueryBuilder struct {
	world    *World
	stores   []AnyStore
	executed bool
	results  []core.Entity
}

// Query creates a new QueryBuilder for finding entities with specific component combinations
//
// Example:
//
//	entities := world.Query().
//	    With(world.Components.Position).
//	    With(world.Components.Velocity).
//	    Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{
		world:  w,
		stores: make([]AnyStore, 0, 4),
	}
}

// With adds a component store to the query filter
// Panics if called after Execute()
func (qb *QueryBuilder) With(store AnyStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.stores = append(qb.stores, store)
	return qb
}

// Execute returns all entities present in every store, in ascending entity order
// The result is a snapshot; later removals do not affect it
// Calling Execute() multiple times returns the cached result
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	if len(qb.stores) == 0 {
		qb.results = make([]core.Entity, 0)
		return qb.results
	}

	if len(qb.stores) == 1 {
		qb.results = qb.stores[0].All()
		slices.Sort(qb.results)
		return qb.results
	}

	// Smallest store first minimizes Has() checks
	sort.SliceStable(qb.stores, func(i, j int) bool {
		return qb.stores[i].Count() < qb.stores[j].Count()
	})

	candidates := qb.stores[0].All()
	for i := 1; i < len(qb.stores); i++ {
		store := qb.stores[i]
		filtered := candidates[:0]
		for _, e := range candidates {
			if store.Has(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered
		if len(candidates) == 0 {
			break
		}
	}

	slices.Sort(candidates)
	qb.results = candidates
	return qb.results
}
