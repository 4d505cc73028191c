package navigation

import "github.com/lixenwraith/flowgrid/core"

// Direction constants index core.Neighbor8
const (
	DirNone int8 = -1 // No next step: blocked, unreachable or goal
)

// FlowField is an immutable snapshot of next steps toward one goal
// Covers the (2R+1)² window centred on Goal; tiles outside the window have no entry
// Safe for concurrent readers once published
type FlowField struct {
	Goal    core.Point
	Radius  int
	Version uint64 // Assigned by Store.Publish, 0 for the startup field

	side    int
	dirs    []int8  // Per-cell index into core.Neighbor8, DirNone if no entry
	costs   []int32 // Cumulative weight from goal, -1 if unreached
	entries int
}

// emptyField is the field published before the first rebuild
var emptyField = &FlowField{}

// index maps p to a flat window index, false if outside the window
func (f *FlowField) index(p core.Point) (int, bool) {
	if f == nil || f.side == 0 {
		return 0, false
	}
	lx := p.X - f.Goal.X + f.Radius
	ly := p.Y - f.Goal.Y + f.Radius
	if lx < 0 || ly < 0 || lx >= f.side || ly >= f.side {
		return 0, false
	}
	return ly*f.side + lx, true
}

// Direction returns the neighbor index of p's next step, DirNone if p has no entry
func (f *FlowField) Direction(p core.Point) int8 {
	idx, ok := f.index(p)
	if !ok {
		return DirNone
	}
	return f.dirs[idx]
}

// NextStep returns the adjacent tile to step onto from p
func (f *FlowField) NextStep(p core.Point) (core.Point, bool) {
	dir := f.Direction(p)
	if dir == DirNone {
		return core.Point{}, false
	}
	return p.Add(core.Neighbor8[dir]), true
}

// Cost returns the cumulative path weight from the goal to p, false if unreached
func (f *FlowField) Cost(p core.Point) (int, bool) {
	idx, ok := f.index(p)
	if !ok || f.costs[idx] < 0 {
		return 0, false
	}
	return int(f.costs[idx]), true
}

// Len returns the number of tiles with a next step
func (f *FlowField) Len() int {
	if f == nil {
		return 0
	}
	return f.entries
}

// Range calls fn for every entry in row-major order, stopping if fn returns false
func (f *FlowField) Range(fn func(tile, next core.Point) bool) {
	if f == nil || f.side == 0 {
		return
	}
	for ly := 0; ly < f.side; ly++ {
		for lx := 0; lx < f.side; lx++ {
			dir := f.dirs[ly*f.side+lx]
			if dir == DirNone {
				continue
			}
			tile := core.Point{X: f.Goal.X - f.Radius + lx, Y: f.Goal.Y - f.Radius + ly}
			if !fn(tile, tile.Add(core.Neighbor8[dir])) {
				return
			}
		}
	}
}

// Equal reports whether f and g hold identical entries for the same goal, ignoring Version
func (f *FlowField) Equal(g *FlowField) bool {
	if f.Len() != g.Len() {
		return false
	}
	if f.Len() == 0 {
		return true
	}
	if f.Goal != g.Goal || f.Radius != g.Radius {
		return false
	}
	for i := range f.dirs {
		if f.dirs[i] != g.dirs[i] || f.costs[i] != g.costs[i] {
			return false
		}
	}
	return true
}
