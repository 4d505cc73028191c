package sim

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/flowgrid/agent"
	"github.com/lixenwraith/flowgrid/config"
	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/engine"
	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/status"
	"github.com/lixenwraith/flowgrid/system"
	"github.com/lixenwraith/flowgrid/vmath"
	"github.com/lixenwraith/flowgrid/world"
)

// Sim owns the world, the agents and the flow field, and runs them on one scheduler
type Sim struct {
	Config    *config.Config
	Status    *status.Registry
	World     *world.Map
	Agents    *agent.Registry
	Goals     *agent.GoalTracker
	Rebuilder *navigation.Rebuilder
	Scheduler *engine.Scheduler
	Generator world.Generator

	GoalWatch  *system.GoalWatchSystem
	Navigation *system.NavigationSystem

	log logrus.FieldLogger
}

// Options toggles optional systems
type Options struct {
	// GoalWanders adds a system that walks the goal randomly, for runs without input
	GoalWanders bool
	// WanderEvery is the number of ticks between goal moves
	WanderEvery int
}

// New assembles a simulation from a validated config
func New(cfg *config.Config, reg *status.Registry, log logrus.FieldLogger, opts Options) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	m, err := world.NewMap(cfg.World.ChunkSize)
	if err != nil {
		return nil, err
	}
	agents := agent.NewRegistry()
	goals := agent.NewGoalTracker(agents, cfg.World.TileSize)

	rebuilder, err := navigation.NewRebuilder(cfg.Nav.Radius, goals, m, reg, log)
	if err != nil {
		return nil, errors.Wrap(err, "sim: flow field")
	}

	s := &Sim{
		Config:    cfg,
		Status:    reg,
		World:     m,
		Agents:    agents,
		Goals:     goals,
		Rebuilder: rebuilder,
		Scheduler: engine.NewScheduler(reg, log),
		Generator: world.Generator{
			Seed:        cfg.World.Seed,
			WallDensity: cfg.World.WallDensity,
			SafeMargin:  cfg.World.SafeMargin,
			Machines:    cfg.World.Machines,
		},
		log: log.WithField("component", "sim"),
	}

	s.GoalWatch = system.NewGoalWatchSystem(goals, rebuilder.Trigger)
	s.Navigation = system.NewNavigationSystem(rebuilder, reg)

	if opts.GoalWanders {
		s.Scheduler.AddSystem(system.NewGoalWanderSystem(goals, m, cfg.World.Seed^0x9e3779b97f4a7c15, cfg.World.TileSize, opts.WanderEvery))
	}
	s.Scheduler.AddSystem(s.GoalWatch)
	s.Scheduler.AddSystem(system.NewWorldStreamSystem(m, goals, s.Generator, cfg.World.SpawnChunkRadius, log))
	s.Scheduler.AddSystem(s.Navigation)
	s.Scheduler.AddSystem(system.NewSteeringSystem(agents, rebuilder.Store, cfg.World.TileSize, reg))

	statChunks := reg.Ints.Get("world.chunks")
	m.OnMutate(func(p core.Point) {
		if s.inRange(p) {
			rebuilder.Trigger.Request(navigation.ReasonMapChanged)
		}
	})
	m.OnChunkLoaded(func(c core.ChunkCoord) {
		statChunks.Store(int64(m.ChunkCount()))
		if s.chunkInRange(c) {
			rebuilder.Trigger.Request(navigation.ReasonChunkLoaded)
		}
	})
	m.OnChunkUnloaded(func(c core.ChunkCoord) {
		statChunks.Store(int64(m.ChunkCount()))
		if s.chunkInRange(c) {
			rebuilder.Trigger.Request(navigation.ReasonChunkUnloaded)
		}
	})

	return s, nil
}

// inRange returns true if p lies within the field radius of the tracked goal
// Tiles outside the window are never queried by the builder, so their changes cannot affect the field
func (s *Sim) inRange(p core.Point) bool {
	goal, ok := s.GoalWatch.Tracked()
	if !ok {
		return false
	}
	return p.Chebyshev(goal) <= s.Rebuilder.Radius()
}

// chunkInRange returns true if chunk c overlaps the field window of the tracked goal
func (s *Sim) chunkInRange(c core.ChunkCoord) bool {
	goal, ok := s.GoalWatch.Tracked()
	if !ok {
		return false
	}
	size := s.World.ChunkSize()
	r := s.Rebuilder.Radius()
	lo := c.Origin(size)
	hi := core.Point{X: lo.X + size - 1, Y: lo.Y + size - 1}
	return lo.X <= goal.X+r && hi.X >= goal.X-r && lo.Y <= goal.Y+r && hi.Y >= goal.Y-r
}

// Store returns the published flow field store
func (s *Sim) Store() *navigation.Store {
	return s.Rebuilder.Store
}

// TickInterval returns the fixed tick duration
func (s *Sim) TickInterval() time.Duration {
	return time.Second / time.Duration(s.Config.Sim.TickRate)
}

// SpawnGoal places the goal entity on tile p and loads the chunks around it
func (s *Sim) SpawnGoal(p core.Point) *agent.Entity {
	s.World.EnsureAround(p, s.Config.World.SpawnChunkRadius, s.Generator)
	return s.Agents.Spawn(agent.RoleGoal, core.WorldFromTile(p, s.Config.World.TileSize), 0)
}

// SpawnFollowers places n followers on random walkable tiles within the field radius of p
// Returns the number actually spawned, fewer if the area is too crowded with walls
func (s *Sim) SpawnFollowers(p core.Point, n int, seed uint64) int {
	rng := vmath.NewFastRand(seed)
	r := s.Rebuilder.Radius()
	spawned := 0
	for attempts := 0; spawned < n && attempts < n*64; attempts++ {
		tile := core.Point{X: p.X + rng.Intn(2*r+1) - r, Y: p.Y + rng.Intn(2*r+1) - r}
		if tile == p || !s.World.IsWalkable(tile) {
			continue
		}
		s.Agents.Spawn(agent.RoleFollower, core.WorldFromTile(tile, s.Config.World.TileSize), s.Config.Sim.AgentSpeed)
		spawned++
	}
	return spawned
}

// Step runs one tick at the configured interval
func (s *Sim) Step() {
	s.Scheduler.Step(s.TickInterval())
}
