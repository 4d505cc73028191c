package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/parameter"
	"github.com/lixenwraith/flowgrid/status"
)

// NavigationSystem rebuilds the flow field when the trigger is pending
// Runs before steering so followers read this tick's field
type NavigationSystem struct {
	rebuilder *navigation.Rebuilder
	enabled   bool

	statIdle *atomic.Int64
	last     navigation.Outcome
}

func NewNavigationSystem(r *navigation.Rebuilder, reg *status.Registry) *NavigationSystem {
	return &NavigationSystem{
		rebuilder: r,
		enabled:   true,
		statIdle:  reg.Ints.Get("nav.idle"),
	}
}

func (s *NavigationSystem) Name() string {
	return "navigation"
}

func (s *NavigationSystem) Priority() int {
	return parameter.PriorityNavigation
}

// SetEnabled pauses rebuilds; pending requests stay latched until re-enabled
func (s *NavigationSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
}

func (s *NavigationSystem) Update(time.Duration) {
	if !s.enabled {
		return
	}
	s.last = s.rebuilder.Tick()
	if s.last == navigation.OutcomeIdle {
		s.statIdle.Add(1)
	}
}

// LastOutcome returns what the most recent update did
func (s *NavigationSystem) LastOutcome() navigation.Outcome {
	return s.last
}
