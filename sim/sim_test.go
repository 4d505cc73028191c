package sim

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/flowgrid/agent"
	"github.com/lixenwraith/flowgrid/config"
	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/status"
	"github.com/lixenwraith/flowgrid/world"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Nav.Radius = 6
	cfg.World.ChunkSize = 8
	cfg.World.WallDensity = 0
	cfg.World.Machines = false
	cfg.World.SpawnChunkRadius = 1
	cfg.Sim.TickRate = 10
	cfg.Sim.AgentSpeed = 16
	return cfg
}

func newTestSim(t *testing.T, cfg *config.Config) *Sim {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	s, err := New(cfg, status.NewRegistry(), log, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewRejectsInvalidRadius(t *testing.T) {
	cfg := testConfig()
	cfg.Nav.Radius = 0
	if _, err := New(cfg, nil, nil, Options{}); err == nil {
		t.Error("expected error for zero radius")
	}
}

func TestNoGoalLeavesFieldUnchanged(t *testing.T) {
	s := newTestSim(t, testConfig())
	before := s.Store().Snapshot()

	s.Rebuilder.MarkDirty()
	s.Step()

	if s.Store().Snapshot() != before || s.Store().Version() != 0 {
		t.Error("field changed without a goal")
	}
	if s.Navigation.LastOutcome() != navigation.OutcomeSkippedNoGoal {
		t.Errorf("outcome %v", s.Navigation.LastOutcome())
	}
}

func TestTwoGoalsLeaveFieldUnchanged(t *testing.T) {
	s := newTestSim(t, testConfig())
	s.SpawnGoal(core.Point{X: 0, Y: 0})
	s.Step()
	before := s.Store().Snapshot()

	s.SpawnGoal(core.Point{X: 3, Y: 3})
	s.Rebuilder.MarkDirty()
	s.Step()
	if s.Store().Snapshot() != before {
		t.Error("field rebuilt with an ambiguous goal")
	}
}

func TestGoalMoveRebuildsSameTick(t *testing.T) {
	s := newTestSim(t, testConfig())
	goal := s.SpawnGoal(core.Point{X: 0, Y: 0})
	s.Step()
	if s.Store().Snapshot().Goal != (core.Point{}) {
		t.Fatal("first tick did not build for the goal")
	}
	v := s.Store().Version()

	// Unmoved goal: no rebuild
	s.Step()
	if s.Store().Version() != v {
		t.Error("rebuilt without a trigger")
	}

	goal.Pos = core.WorldFromTile(core.Point{X: 2, Y: -1}, s.Config.World.TileSize)
	s.Step()
	if got := s.Store().Snapshot().Goal; got != (core.Point{X: 2, Y: -1}) {
		t.Errorf("field goal %v after move", got)
	}
	if s.Store().Version() != v+1 {
		t.Errorf("expected exactly one rebuild, version %d -> %d", v, s.Store().Version())
	}
}

func TestMutationTriggersOnlyInRange(t *testing.T) {
	s := newTestSim(t, testConfig())
	s.SpawnGoal(core.Point{X: 0, Y: 0})
	s.Step()
	v := s.Store().Version()

	// Chunk radius 1 with chunk size 8 loads tiles -8..15, radius is 6
	if err := s.World.Place(core.Point{X: 10, Y: 10}, world.StructureWall); err != nil {
		t.Fatalf("Place: %v", err)
	}
	s.Step()
	if s.Store().Version() != v {
		t.Error("mutation outside the radius triggered a rebuild")
	}

	wall := core.Point{X: 1, Y: 0}
	if err := s.World.Toggle(wall); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	s.Step()
	if s.Store().Version() != v+1 {
		t.Fatal("mutation inside the radius did not rebuild")
	}
	if next, ok := s.Store().NextStep(core.Point{X: 2, Y: 0}); ok && next == wall {
		t.Error("field routes through the new wall")
	}
}

func TestMutationsCoalesce(t *testing.T) {
	s := newTestSim(t, testConfig())
	s.SpawnGoal(core.Point{X: 0, Y: 0})
	s.Step()
	v := s.Store().Version()

	for x := 1; x <= 4; x++ {
		if err := s.World.Toggle(core.Point{X: x, Y: 2}); err != nil {
			t.Fatal(err)
		}
	}
	s.Step()
	if s.Store().Version() != v+1 {
		t.Errorf("four mutations gave %d rebuilds", s.Store().Version()-v)
	}
}

func TestFollowersConverge(t *testing.T) {
	cfg := testConfig()
	s := newTestSim(t, cfg)
	goalTile := core.Point{X: 0, Y: 0}
	s.SpawnGoal(goalTile)
	if n := s.SpawnFollowers(goalTile, 5, 3); n != 5 {
		t.Fatalf("spawned %d followers", n)
	}

	for i := 0; i < 200; i++ {
		s.Step()
	}

	s.Agents.Each(agent.RoleFollower, func(e *agent.Entity) {
		tile := core.TileFromWorld(e.Pos, cfg.World.TileSize)
		if tile.Chebyshev(goalTile) > 1 {
			t.Errorf("follower %d stuck at %v", e.ID, tile)
		}
	})
}

func TestFollowersReadFreshField(t *testing.T) {
	s := newTestSim(t, testConfig())
	goal := s.SpawnGoal(core.Point{X: 0, Y: 0})
	follower := s.Agents.Spawn(agent.RoleFollower, core.WorldFromTile(core.Point{X: 3, Y: 0}, 16), 16)
	s.Step()

	// Goal jumps east of the follower; the same tick must steer east
	goal.Pos = core.WorldFromTile(core.Point{X: 6, Y: 0}, 16)
	startX := follower.Pos.X
	s.Step()
	if follower.Pos.X <= startX {
		t.Errorf("follower moved from %v to %v, expected east", startX, follower.Pos.X)
	}
}

func TestGoalReturnAfterEditRebuilds(t *testing.T) {
	s := newTestSim(t, testConfig())
	goalTile := core.Point{X: 3, Y: 3}
	goal := s.SpawnGoal(goalTile)
	s.Step()
	v := s.Store().Version()

	s.Agents.Despawn(goal.ID)
	wall := core.Point{X: 4, Y: 3}
	if err := s.World.Place(wall, world.StructureWall); err != nil {
		t.Fatalf("Place: %v", err)
	}
	s.Step()
	if s.Store().Version() != v {
		t.Fatal("rebuilt without a goal")
	}

	// Back on the same tile
	s.SpawnGoal(goalTile)
	s.Step()
	if s.Store().Version() != v+1 {
		t.Fatalf("version %d after goal returned, want %d", s.Store().Version(), v+1)
	}
	if next, ok := s.Store().NextStep(core.Point{X: 5, Y: 3}); ok && next == wall {
		t.Errorf("field still steps (5,3) into the wall at %v", wall)
	}
}

func TestChunkUnloadInRangeRebuilds(t *testing.T) {
	s := newTestSim(t, testConfig())
	s.SpawnGoal(core.Point{X: 0, Y: 0})
	s.Step()
	v := s.Store().Version()
	inChunk := core.Point{X: 2, Y: 2}
	if _, ok := s.Store().NextStep(inChunk); !ok {
		t.Fatalf("no step for %v before unload", inChunk)
	}

	var reasons []navigation.Reason
	s.Rebuilder.OnPublish = func(_ *navigation.FlowField, r navigation.Reason) { reasons = append(reasons, r) }

	if !s.World.UnloadChunk(core.ChunkCoord{X: 0, Y: 0}) {
		t.Fatal("goal chunk was not loaded")
	}
	// Rebuild alone, a full step would stream the chunk straight back in
	s.Rebuilder.Tick()

	if s.Store().Version() != v+1 || len(reasons) != 1 || reasons[0] != navigation.ReasonChunkUnloaded {
		t.Fatalf("version %d reasons %v, want one chunk_unloaded rebuild", s.Store().Version(), reasons)
	}
	if _, ok := s.Store().NextStep(inChunk); ok {
		t.Errorf("%v in the unloaded chunk still has a step", inChunk)
	}
}
