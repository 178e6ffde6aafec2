package engine

import (
	"reflect"
	"sync"

	"github.com/lixenwraith/forcegraph/component"
	"github.com/lixenwraith/forcegraph/core"
)

// System is a single pass over the world, run once per tick in priority order
type System interface {
	Init()
	Priority() int // Lower values run first
	Update()
}

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	// Global resources (scene state, parameters, metrics)
	Resources *ResourceStore

	// Cached typed stores for the known component kinds
	Components ComponentStore

	stores     map[reflect.Type]AnyStore
	storeOrder []AnyStore

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a new ECS world with all known component stores registered
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		Resources:    NewResourceStore(),
		stores:       make(map[reflect.Type]AnyStore),
		systems:      make([]System, 0),
	}
	w.Components = newComponentStore(w)
	return w
}

// GetStore returns the store for component type T, creating it on first use
func GetStore[T any](w *World) *Store[T] {
	t := reflect.TypeFor[T]()

	w.mu.RLock()
	if s, ok := w.stores[t]; ok {
		w.mu.RUnlock()
		return s.(*Store[T])
	}
	w.mu.RUnlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.stores[t]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	w.stores[t] = s
	w.storeOrder = append(w.storeOrder, s)
	return s
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	for _, store := range w.allStores() {
		store.Remove(e)
	}
}

// DestroyBatch removes all components of every listed entity in one pass per store
func (w *World) DestroyBatch(entities []core.Entity) {
	if len(entities) == 0 {
		return
	}
	for _, store := range w.allStores() {
		store.RemoveBatch(entities)
	}
}

// Alive reports whether the entity holds at least one component
func (w *World) Alive(e core.Entity) bool {
	for _, store := range w.allStores() {
		if store.Has(e) {
			return true
		}
	}
	return false
}

// MarkForRemoval tags an entity for destruction at the end of the current tick
// Systems keep observing the entity until the cull pass runs
func (w *World) MarkForRemoval(e core.Entity) {
	w.Components.Death.Set(e, component.DeathComponent{})
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	system.Init()
	w.systems = append(w.systems, system)

	// Stable insertion sort keeps registration order among equal priorities
	for i := len(w.systems) - 1; i > 0 && w.systems[i-1].Priority() > w.systems[i].Priority(); i-- {
		w.systems[i-1], w.systems[i] = w.systems[i], w.systems[i-1]
	}
}

// Systems returns a copy of all registered systems in execution order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// UpdateLocked runs all systems assuming the caller already holds updateMutex
func (w *World) UpdateLocked() {
	for _, system := range w.Systems() {
		system.Update()
	}
}

func (w *World) allStores() []AnyStore {
	w.mu.RLock()
	defer w.mu.RUnlock()
	stores := make([]AnyStore, len(w.storeOrder))
	copy(stores, w.storeOrder)
	return stores
}
