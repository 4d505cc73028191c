package navigation

import (
	"strings"
	"sync/atomic"
)

// Reason records why a rebuild was requested
type Reason uint32

const (
	ReasonGoalMoved Reason = 1 << iota
	ReasonMapChanged
	ReasonChunkLoaded
	ReasonManual
	ReasonChunkUnloaded
)

var reasonNames = [...]string{"goal_moved", "map_changed", "chunk_loaded", "manual", "chunk_unloaded"}

func (r Reason) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	for i, name := range reasonNames {
		if r&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Trigger is a debounced pending-rebuild latch
// Any number of requests before the next drain coalesce into one rebuild
// Producers may run on any goroutine; Drain belongs to the tick loop
type Trigger struct {
	pending  atomic.Uint32
	requests atomic.Int64
}

// Request latches a rebuild for the next tick
// An empty reason is ignored
func (t *Trigger) Request(r Reason) {
	if r == 0 {
		return
	}
	t.pending.Or(uint32(r))
	t.requests.Add(1)
}

// Pending returns true if a rebuild is latched
func (t *Trigger) Pending() bool {
	return t.pending.Load() != 0
}

// Drain clears the latch, returning the accumulated reasons and the number of coalesced requests
func (t *Trigger) Drain() (Reason, int) {
	r := Reason(t.pending.Swap(0))
	if r == 0 {
		return 0, 0
	}
	return r, int(t.requests.Swap(0))
}
