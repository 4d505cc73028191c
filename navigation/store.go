package navigation

import (
	"sync/atomic"

	"github.com/lixenwraith/flowgrid/core"
)

// Store holds the published flow field
// The builder side swaps whole snapshots; readers never see a partially replaced field
type Store struct {
	current atomic.Pointer[FlowField]
	version atomic.Uint64
}

// NewStore creates a store holding the empty startup field
func NewStore() *Store {
	s := &Store{}
	s.current.Store(emptyField)
	return s
}

// Publish replaces the current field with f and stamps its version
// f must not be modified by the caller afterwards
func (s *Store) Publish(f *FlowField) uint64 {
	v := s.version.Add(1)
	f.Version = v
	s.current.Store(f)
	return v
}

// Snapshot returns the current field
// Consumers needing several lookups against one rebuild should hold the snapshot instead of calling NextStep repeatedly
func (s *Store) Snapshot() *FlowField {
	return s.current.Load()
}

// NextStep returns the next step from p in the current field
func (s *Store) NextStep(p core.Point) (core.Point, bool) {
	return s.current.Load().NextStep(p)
}

// Version returns the version of the current field, 0 before the first publish
func (s *Store) Version() uint64 {
	return s.current.Load().Version
}
