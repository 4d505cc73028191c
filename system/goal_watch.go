package system

import (
	"time"

	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/parameter"
)

// GoalWatchSystem requests a rebuild whenever the goal enters a new tile or appears
type GoalWatchSystem struct {
	goals   navigation.GoalSource
	trigger *navigation.Trigger

	last    core.Point
	tracked bool
}

func NewGoalWatchSystem(goals navigation.GoalSource, trigger *navigation.Trigger) *GoalWatchSystem {
	return &GoalWatchSystem{goals: goals, trigger: trigger}
}

func (s *GoalWatchSystem) Name() string {
	return "goal_watch"
}

func (s *GoalWatchSystem) Priority() int {
	return parameter.PriorityGoalWatch
}

func (s *GoalWatchSystem) Update(time.Duration) {
	tile, ok := s.goals.CurrentGoalTile()
	if !ok {
		// Requests made meanwhile are dropped by the rebuilder, so the next sighting must rebuild even on the same tile
		s.tracked = false
		return
	}
	if s.tracked && tile == s.last {
		return
	}
	s.last = tile
	s.tracked = true
	s.trigger.Request(navigation.ReasonGoalMoved)
}

// Tracked returns the current goal tile, false while no single goal is present
func (s *GoalWatchSystem) Tracked() (core.Point, bool) {
	return s.last, s.tracked
}
