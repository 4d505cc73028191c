package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge stored as IEEE-754 bits
// Zero value reads 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add increments the gauge and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	return f.update(func(cur float64) float64 { return cur + delta })
}

// Max raises the gauge to val if val is larger and returns the resulting value
func (f *AtomicFloat) Max(val float64) float64 {
	return f.update(func(cur float64) float64 { return max(cur, val) })
}

// update applies fn with a compare-and-swap retry loop
func (f *AtomicFloat) update(fn func(float64) float64) float64 {
	for {
		old := f.bits.Load()
		next := fn(math.Float64frombits(old))
		nextBits := math.Float64bits(next)
		if nextBits == old || f.bits.CompareAndSwap(old, nextBits) {
			return next
		}
	}
}
