package system

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/parameter"
	"github.com/lixenwraith/flowgrid/world"
)

// WorldStreamSystem generates chunks around the goal as it travels
// Loading notifies the map's chunk listeners, which decide whether to request a rebuild
type WorldStreamSystem struct {
	world       *world.Map
	goals       navigation.GoalSource
	gen         world.Generator
	chunkRadius int
	log         logrus.FieldLogger
}

func NewWorldStreamSystem(m *world.Map, goals navigation.GoalSource, gen world.Generator, chunkRadius int, log logrus.FieldLogger) *WorldStreamSystem {
	return &WorldStreamSystem{
		world:       m,
		goals:       goals,
		gen:         gen,
		chunkRadius: chunkRadius,
		log:         log.WithField("component", "world"),
	}
}

func (s *WorldStreamSystem) Name() string {
	return "world_stream"
}

func (s *WorldStreamSystem) Priority() int {
	return parameter.PriorityWorldStream
}

func (s *WorldStreamSystem) Update(time.Duration) {
	tile, ok := s.goals.CurrentGoalTile()
	if !ok {
		return
	}
	if n := s.world.EnsureAround(tile, s.chunkRadius, s.gen); n > 0 {
		s.log.WithFields(logrus.Fields{"around": tile, "generated": n, "loaded": s.world.ChunkCount()}).Debug("chunks generated")
	}
}
