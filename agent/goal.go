package agent

import "github.com/lixenwraith/flowgrid/core"

// GoalTracker resolves the single goal entity's tile
type GoalTracker struct {
	registry *Registry
	tileSize float64
}

// NewGoalTracker creates a tracker over the registry
func NewGoalTracker(r *Registry, tileSize float64) *GoalTracker {
	return &GoalTracker{registry: r, tileSize: tileSize}
}

// Goal returns the goal entity, false unless exactly one exists
func (g *GoalTracker) Goal() (*Entity, bool) {
	var goal *Entity
	count := 0
	g.registry.Each(RoleGoal, func(e *Entity) {
		goal = e
		count++
	})
	return goal, count == 1
}

// CurrentGoalTile returns the goal's tile
// ok is false when there is no goal entity or more than one
func (g *GoalTracker) CurrentGoalTile() (core.Point, bool) {
	goal, ok := g.Goal()
	if !ok {
		return core.Point{}, false
	}
	return core.TileFromWorld(goal.Pos, g.tileSize), true
}
