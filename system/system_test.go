package system

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/lixenwraith/flowgrid/agent"
	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/engine"
	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/status"
	"github.com/lixenwraith/flowgrid/world"
)

const tileSize = 16.0

var openWorld = navigation.WalkableFunc(func(core.Point) bool { return true })

func TestGoalWatchRequestsOnTileChange(t *testing.T) {
	goal := core.Point{}
	present := false
	trigger := &navigation.Trigger{}
	sys := NewGoalWatchSystem(navigation.GoalFunc(func() (core.Point, bool) { return goal, present }), trigger)

	sys.Update(0)
	if trigger.Pending() {
		t.Fatal("request without a goal")
	}
	if _, ok := sys.Tracked(); ok {
		t.Fatal("tracked before any goal")
	}

	present = true
	sys.Update(0)
	if reason, _ := trigger.Drain(); reason != navigation.ReasonGoalMoved {
		t.Fatalf("first sighting reason = %v, want goal_moved", reason)
	}

	sys.Update(0)
	if trigger.Pending() {
		t.Error("request while goal stayed on its tile")
	}

	goal = core.Point{X: 1}
	sys.Update(0)
	if reason, _ := trigger.Drain(); reason != navigation.ReasonGoalMoved {
		t.Errorf("move reason = %v, want goal_moved", reason)
	}

	present = false
	sys.Update(0)
	if _, ok := sys.Tracked(); ok {
		t.Error("still tracking after the goal vanished")
	}
	if trigger.Pending() {
		t.Error("request while no goal is present")
	}

	// Reappearing on the same tile must rebuild
	present = true
	sys.Update(0)
	if reason, _ := trigger.Drain(); reason != navigation.ReasonGoalMoved {
		t.Errorf("reappearance reason = %v, want goal_moved", reason)
	}
	if tile, ok := sys.Tracked(); !ok || tile != goal {
		t.Errorf("tracked = %v,%v, want %v", tile, ok, goal)
	}
}

func TestNavigationSystemPause(t *testing.T) {
	reg := status.NewRegistry()
	log, _ := test.NewNullLogger()
	goals := navigation.GoalFunc(func() (core.Point, bool) { return core.Point{}, true })
	r, err := navigation.NewRebuilder(3, goals, openWorld, reg, log)
	if err != nil {
		t.Fatal(err)
	}
	sys := NewNavigationSystem(r, reg)

	sys.SetEnabled(false)
	sys.Update(0)
	if !r.Trigger.Pending() {
		t.Fatal("paused system consumed the request")
	}

	sys.SetEnabled(true)
	sys.Update(0)
	if sys.LastOutcome() != navigation.OutcomeRebuilt {
		t.Fatalf("outcome = %v, want rebuilt", sys.LastOutcome())
	}
	sys.Update(0)
	if sys.LastOutcome() != navigation.OutcomeIdle {
		t.Errorf("outcome = %v, want idle", sys.LastOutcome())
	}
	if got := reg.Ints.Get("nav.idle").Load(); got != 1 {
		t.Errorf("nav.idle = %d, want 1", got)
	}
}

func TestWorldStreamLoadsAroundGoal(t *testing.T) {
	m, err := world.NewMap(8)
	if err != nil {
		t.Fatal(err)
	}
	goal := core.Point{X: 20, Y: -3}
	log, _ := test.NewNullLogger()
	sys := NewWorldStreamSystem(m, navigation.GoalFunc(func() (core.Point, bool) { return goal, true }), world.Generator{Seed: 1}, 1, log)

	sys.Update(0)
	if m.ChunkCount() != 9 {
		t.Fatalf("chunks = %d, want 9", m.ChunkCount())
	}
	if !m.Loaded(core.ChunkOf(goal, 8)) {
		t.Error("goal chunk not loaded")
	}

	sys.Update(0)
	if m.ChunkCount() != 9 {
		t.Errorf("second update loaded more chunks: %d", m.ChunkCount())
	}
}

func TestGoalWanderMovesEveryN(t *testing.T) {
	agents := agent.NewRegistry()
	goal := agents.Spawn(agent.RoleGoal, core.WorldFromTile(core.Point{}, tileSize), 0)
	tracker := agent.NewGoalTracker(agents, tileSize)
	sys := NewGoalWanderSystem(tracker, openWorld, 42, tileSize, 2)

	sys.Update(0)
	if tile := core.TileFromWorld(goal.Pos, tileSize); tile != (core.Point{}) {
		t.Fatalf("goal moved early to %v", tile)
	}
	sys.Update(0)
	tile := core.TileFromWorld(goal.Pos, tileSize)
	if !tile.IsNeighbor(core.Point{}) {
		t.Errorf("goal at %v, want a neighbor of the origin", tile)
	}
}

func TestGoalWanderBoxedIn(t *testing.T) {
	agents := agent.NewRegistry()
	goal := agents.Spawn(agent.RoleGoal, core.WorldFromTile(core.Point{}, tileSize), 0)
	tracker := agent.NewGoalTracker(agents, tileSize)
	closed := navigation.WalkableFunc(func(core.Point) bool { return false })
	sys := NewGoalWanderSystem(tracker, closed, 42, tileSize, 1)

	before := goal.Pos
	sys.Update(0)
	if goal.Pos != before {
		t.Errorf("boxed-in goal moved to %v", goal.Pos)
	}
}

func TestSteeringStats(t *testing.T) {
	reg := status.NewRegistry()
	agents := agent.NewRegistry()
	b, err := navigation.NewBuilder(4)
	if err != nil {
		t.Fatal(err)
	}
	store := navigation.NewStore()
	store.Publish(b.Build(core.Point{}, openWorld))

	near := agents.Spawn(agent.RoleFollower, core.WorldFromTile(core.Point{X: 2}, tileSize), 32)
	agents.Spawn(agent.RoleFollower, core.WorldFromTile(core.Point{X: 10}, tileSize), 32) // Outside the field

	sys := NewSteeringSystem(agents, store, tileSize, reg)
	sched := engine.NewScheduler(reg, nil)
	sched.AddSystem(sys)
	sched.Step(100 * time.Millisecond)

	if got := reg.Ints.Get("agents.moving").Load(); got != 1 {
		t.Errorf("agents.moving = %d, want 1", got)
	}
	if got := reg.Ints.Get("agents.stalled").Load(); got != 1 {
		t.Errorf("agents.stalled = %d, want 1", got)
	}
	start := core.WorldFromTile(core.Point{X: 2}, tileSize)
	if near.Pos.X >= start.X {
		t.Errorf("follower did not move west: %v", near.Pos)
	}
}
