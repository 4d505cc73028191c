package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/flowgrid/agent"
	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/parameter"
	"github.com/lixenwraith/flowgrid/status"
)

// SteeringSystem moves followers one step along the published field
type SteeringSystem struct {
	agents   *agent.Registry
	store    *navigation.Store
	tileSize float64

	statMoving  *atomic.Int64
	statStalled *atomic.Int64
}

func NewSteeringSystem(agents *agent.Registry, store *navigation.Store, tileSize float64, reg *status.Registry) *SteeringSystem {
	return &SteeringSystem{
		agents:      agents,
		store:       store,
		tileSize:    tileSize,
		statMoving:  reg.Ints.Get("agents.moving"),
		statStalled: reg.Ints.Get("agents.stalled"),
	}
}

func (s *SteeringSystem) Name() string {
	return "steering"
}

func (s *SteeringSystem) Priority() int {
	return parameter.PrioritySteering
}

func (s *SteeringSystem) Update(dt time.Duration) {
	// One snapshot for the whole tick
	field := s.store.Snapshot()
	arrival := s.tileSize * parameter.AgentArrivalDistance / parameter.TileSize

	var moving, stalled int64
	s.agents.Each(agent.RoleFollower, func(e *agent.Entity) {
		if agent.Steer(e, field, dt, s.tileSize, arrival) {
			moving++
		} else {
			stalled++
		}
	})
	s.statMoving.Store(moving)
	s.statStalled.Store(stalled)
}
