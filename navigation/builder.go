package navigation

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/parameter"
)

// ErrInvalidRadius is returned when constructing a builder with a non-positive radius
var ErrInvalidRadius = errors.New("navigation: radius must be positive")

const costUnreachable = 1<<30 - 1

// Per-offset edge costs matching core.Neighbor8 order
var dirCosts [8]int

func init() {
	for i, d := range core.Neighbor8 {
		if d.X != 0 && d.Y != 0 {
			dirCosts[i] = parameter.NavCostDiagonal
		} else {
			dirCosts[i] = parameter.NavCostCardinal
		}
	}
}

// Walkability cache states for the current build window
const (
	walkUnknown int8 = iota
	walkOpen
	walkBlocked
)

// Builder computes flow fields inside a fixed Chebyshev radius of the goal
// Buffers are reused across builds; a Builder is not safe for concurrent use
type Builder struct {
	radius int
	side   int

	dist []int  // Weighted distance from goal per window cell
	walk []int8 // Walkability memo, provider is queried at most once per cell per build
	open openSet

	goal     core.Point
	provider Walkability
}

// NewBuilder creates a builder for the given radius in tiles
func NewBuilder(radius int) (*Builder, error) {
	if radius <= 0 {
		return nil, errors.Wrapf(ErrInvalidRadius, "got %d", radius)
	}
	side := 2*radius + 1
	size := side * side
	dist := make([]int, size)
	return &Builder{
		radius: radius,
		side:   side,
		dist:   dist,
		walk:   make([]int8, size),
		open:   newOpenSet(dist),
	}, nil
}

// Radius returns the configured Chebyshev radius
func (b *Builder) Radius() int {
	return b.radius
}

// index maps p to a flat window index, false if outside the radius
func (b *Builder) index(p core.Point) (int, bool) {
	lx := p.X - b.goal.X + b.radius
	ly := p.Y - b.goal.Y + b.radius
	if lx < 0 || ly < 0 || lx >= b.side || ly >= b.side {
		return 0, false
	}
	return ly*b.side + lx, true
}

func (b *Builder) point(idx int) core.Point {
	return core.Point{
		X: b.goal.X - b.radius + idx%b.side,
		Y: b.goal.Y - b.radius + idx/b.side,
	}
}

// walkable consults the memo before the provider; out-of-window tiles are never queried
func (b *Builder) walkable(idx int) bool {
	switch b.walk[idx] {
	case walkOpen:
		return true
	case walkBlocked:
		return false
	}
	if b.provider.IsWalkable(b.point(idx)) {
		b.walk[idx] = walkOpen
		return true
	}
	b.walk[idx] = walkBlocked
	return false
}

// canStep checks the corner rule for a step from p by offset d
// Diagonal steps need both orthogonal shortcut tiles walkable; both lie inside the window whenever p and p+d do
func (b *Builder) canStep(p core.Point, d core.Point) bool {
	if d.X == 0 || d.Y == 0 {
		return true
	}
	i1, ok1 := b.index(core.Point{X: p.X + d.X, Y: p.Y})
	i2, ok2 := b.index(core.Point{X: p.X, Y: p.Y + d.Y})
	return ok1 && ok2 && b.walkable(i1) && b.walkable(i2)
}

// Build runs the bounded Dijkstra expansion from goal and derives next steps
// Phase 1: weighted Dijkstra (cardinal=10, diagonal=14) over walkable tiles in range, corner cutting rejected
// Phase 2: per-tile steepest descent over neighbors in core.Neighbor8 order, strictly lower cost wins
// The returned field is new; previously returned fields are never touched
func (b *Builder) Build(goal core.Point, provider Walkability) *FlowField {
	b.goal = goal
	b.provider = provider
	defer func() { b.provider = nil }()

	size := b.side * b.side
	for i := 0; i < size; i++ {
		b.dist[i] = costUnreachable
		b.walk[i] = walkUnknown
	}

	// Phase 1: Weighted Dijkstra
	goalIdx, _ := b.index(goal)
	b.dist[goalIdx] = 0

	b.open.reset()
	b.open.update(goalIdx)

	for b.open.len() > 0 {
		idx := b.open.pop()
		cur := b.point(idx)
		for dirIdx, d := range core.Neighbor8 {
			nIdx, ok := b.index(cur.Add(d))
			if !ok || !b.walkable(nIdx) || !b.canStep(cur, d) {
				continue
			}

			newDist := b.dist[idx] + dirCosts[dirIdx]
			if newDist < b.dist[nIdx] {
				b.dist[nIdx] = newDist
				b.open.update(nIdx)
			}
		}
	}

	// Phase 2: Derive next steps from the distance gradient
	field := &FlowField{
		Goal:   goal,
		Radius: b.radius,
		side:   b.side,
		dirs:   make([]int8, size),
		costs:  make([]int32, size),
	}

	// A blocked goal keeps its zero cost for expansion but is never a valid step target
	goalWalkable := b.walkable(goalIdx)

	for idx := 0; idx < size; idx++ {
		field.dirs[idx] = DirNone
		if b.dist[idx] >= costUnreachable {
			field.costs[idx] = -1
		} else {
			field.costs[idx] = int32(b.dist[idx])
		}

		if idx == goalIdx || !b.walkable(idx) {
			continue
		}

		tile := b.point(idx)
		bestDir := DirNone
		bestDist := b.dist[idx]

		for dirIdx, d := range core.Neighbor8 {
			nIdx, ok := b.index(tile.Add(d))
			if !ok {
				continue
			}

			nDist := b.dist[nIdx]
			if nDist >= bestDist {
				continue
			}
			if nIdx == goalIdx && !goalWalkable {
				continue
			}

			// Corner check here too, an unreached tile could otherwise point across a wall corner
			if !b.canStep(tile, d) {
				continue
			}

			bestDist = nDist
			bestDir = int8(dirIdx)
		}

		if bestDir != DirNone {
			field.dirs[idx] = bestDir
			field.entries++
		}
	}

	return field
}
