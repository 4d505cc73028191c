package navigation

import "github.com/lixenwraith/flowgrid/core"

// Walkability answers whether a tile can be stood on
// Implementations must fail closed for tiles they know nothing about
type Walkability interface {
	IsWalkable(p core.Point) bool
}

// WalkableFunc adapts a plain predicate to Walkability
type WalkableFunc func(p core.Point) bool

// IsWalkable calls f(p)
func (f WalkableFunc) IsWalkable(p core.Point) bool {
	return f(p)
}

// GoalSource locates the single tracked goal
// ok is false when there is no goal or the goal is ambiguous
type GoalSource interface {
	CurrentGoalTile() (tile core.Point, ok bool)
}

// GoalFunc adapts a plain accessor to GoalSource
type GoalFunc func() (core.Point, bool)

// CurrentGoalTile calls f()
func (f GoalFunc) CurrentGoalTile() (core.Point, bool) {
	return f()
}
