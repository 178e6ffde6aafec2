package engine

import (
	"reflect"
	"testing"

	"github.com/lixenwraith/forcegraph/component"
	"github.com/lixenwraith/forcegraph/core"
)

func TestStoreSetGet(t *testing.T) {
	s := NewStore[component.ChargeComponent]()
	s.Set(1, component.ChargeComponent{Magnitude: 3})

	got, ok := s.Get(1)
	if !ok || got.Magnitude != 3 {
		t.Fatalf("Get(1) = %+v, %v", got, ok)
	}
	if _, ok := s.Get(2); ok {
		t.Error("Expected missing entity lookup to fail")
	}

	s.Set(1, component.ChargeComponent{Magnitude: 4})
	if s.Count() != 1 {
		t.Errorf("Update should not duplicate entity, count = %d", s.Count())
	}
}

func TestStoreRemovePreservesOrder(t *testing.T) {
	s := NewStore[component.PositionComponent]()
	for _, e := range []core.Entity{5, 2, 9, 7} {
		s.Set(e, component.PositionComponent{})
	}
	s.Remove(2)
	s.Remove(42)

	want := []core.Entity{5, 9, 7}
	if got := s.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestStoreRemoveBatch(t *testing.T) {
	s := NewStore[component.PositionComponent]()
	for e := core.Entity(1); e <= 6; e++ {
		s.Set(e, component.PositionComponent{X: float64(e)})
	}
	s.RemoveBatch([]core.Entity{2, 4, 100})

	want := []core.Entity{1, 3, 5, 6}
	if got := s.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
	if s.Has(4) {
		t.Error("Removed entity still present")
	}
}

func TestStoreAllIsCopy(t *testing.T) {
	s := NewStore[component.PositionComponent]()
	s.Set(1, component.PositionComponent{})
	all := s.All()
	all[0] = 99
	if !s.Has(1) || s.All()[0] != 1 {
		t.Error("Mutating All() result leaked into store")
	}
}
