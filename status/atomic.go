package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 stored as its IEEE bits; the zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(v float64) { f.bits.Store(math.Float64bits(v)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.bits.Load()) }

// Add applies delta with a CAS loop and returns the updated value
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// StoreMax raises the value to v if v is larger, returning the value held afterwards
func (f *AtomicFloat) StoreMax(v float64) float64 {
	for {
		old := f.bits.Load()
		cur := math.Float64frombits(old)
		if v <= cur {
			return cur
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return v
		}
	}
}

// MaxStringLen bounds label metrics such as the simulation state name
const MaxStringLen = 20

// AtomicString holds a short label; longer values are truncated on Store
type AtomicString struct {
	ptr atomic.Pointer[string]
}

func (s *AtomicString) Store(v string) {
	if len(v) > MaxStringLen {
		v = v[:MaxStringLen]
	}
	s.ptr.Store(&v)
}

func (s *AtomicString) Load() string {
	p := s.ptr.Load()
	if p == nil {
		return ""
	}
	return *p
}
