package system

import (
	"time"

	"github.com/lixenwraith/flowgrid/agent"
	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/parameter"
	"github.com/lixenwraith/flowgrid/vmath"
)

// GoalWanderSystem walks the goal entity across walkable tiles in headless runs
// Stands in for player input: picks a random walkable neighbor every few ticks
type GoalWanderSystem struct {
	tracker  *agent.GoalTracker
	walk     navigation.Walkability
	rng      *vmath.FastRand
	tileSize float64
	every    int
	ticks    int
}

func NewGoalWanderSystem(tracker *agent.GoalTracker, walk navigation.Walkability, seed uint64, tileSize float64, everyTicks int) *GoalWanderSystem {
	return &GoalWanderSystem{
		tracker:  tracker,
		walk:     walk,
		rng:      vmath.NewFastRand(seed),
		tileSize: tileSize,
		every:    max(1, everyTicks),
	}
}

func (s *GoalWanderSystem) Name() string {
	return "goal_wander"
}

func (s *GoalWanderSystem) Priority() int {
	// Moves the goal before the watcher samples it
	return parameter.PriorityGoalWatch - 5
}

func (s *GoalWanderSystem) Update(time.Duration) {
	s.ticks++
	if s.ticks%s.every != 0 {
		return
	}
	goal, ok := s.tracker.Goal()
	if !ok {
		return
	}

	tile := core.TileFromWorld(goal.Pos, s.tileSize)
	offset := s.rng.Intn(len(core.Neighbor8))
	for i := range core.Neighbor8 {
		next := tile.Add(core.Neighbor8[(offset+i)%len(core.Neighbor8)])
		if s.walk.IsWalkable(next) {
			goal.Pos = core.WorldFromTile(next, s.tileSize)
			return
		}
	}
}
