package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/flowgrid/agent"
	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/world"
)

// flowDirArrows is indexed like core.Neighbor8, screen rows grow with tile y
var flowDirArrows = [8]rune{
	'↖', '↑', '↗',
	'←', '→',
	'↙', '↓', '↘',
}

// Glyphs
const (
	GlyphUnloaded = '?'
	GlyphFloor    = '·'
	GlyphWall     = '#'
	GlyphMachine  = 'M'
	GlyphGoal     = '●'
	GlyphFollower = '@'
)

// FieldView draws a window of the world, the flow field and agents onto a terminal screen
// One screen cell per tile, the last row is the status bar
type FieldView struct {
	Map      *world.Map
	Agents   *agent.Registry
	TileSize float64
}

// Viewport returns the tile shown at the top left when the view is centred on center
func (v *FieldView) Viewport(screen tcell.Screen, center core.Point) core.Point {
	w, h := screen.Size()
	return core.Point{X: center.X - w/2, Y: center.Y - (h-1)/2}
}

// Draw renders the view centred on center and shows status in the bottom row
func (v *FieldView) Draw(screen tcell.Screen, field *navigation.FlowField, center core.Point, status string) {
	w, h := screen.Size()
	if w <= 0 || h <= 1 {
		return
	}
	rows := h - 1
	origin := v.Viewport(screen, center)
	base := tcell.StyleDefault.Background(RgbBackground)

	maxCost := 0
	field.Range(func(tile, _ core.Point) bool {
		if c, ok := field.Cost(tile); ok && c > maxCost {
			maxCost = c
		}
		return true
	})

	for sy := 0; sy < rows; sy++ {
		for sx := 0; sx < w; sx++ {
			tile := core.Point{X: origin.X + sx, Y: origin.Y + sy}
			r, fg := v.tileGlyph(field, tile, maxCost)
			screen.SetContent(sx, sy, r, nil, base.Foreground(fg))
		}
	}

	// Agents draw over tiles, goal last so it stays visible under followers
	if v.Agents != nil {
		plot := func(e *agent.Entity, r rune, fg tcell.Color) {
			tile := core.TileFromWorld(e.Pos, v.TileSize)
			sx, sy := tile.X-origin.X, tile.Y-origin.Y
			if sx >= 0 && sx < w && sy >= 0 && sy < rows {
				screen.SetContent(sx, sy, r, nil, base.Foreground(fg).Bold(true))
			}
		}
		v.Agents.Each(agent.RoleFollower, func(e *agent.Entity) { plot(e, GlyphFollower, RgbFollower) })
		v.Agents.Each(agent.RoleGoal, func(e *agent.Entity) { plot(e, GlyphGoal, RgbGoal) })
	}

	v.drawStatus(screen, w, h-1, status)
}

func (v *FieldView) tileGlyph(field *navigation.FlowField, tile core.Point, maxCost int) (rune, tcell.Color) {
	s, loaded := v.Map.StructureAt(tile)
	if !loaded {
		return GlyphUnloaded, RgbUnloaded
	}
	switch s {
	case world.StructureWall:
		return GlyphWall, RgbWall
	case world.StructureMachine:
		return GlyphMachine, RgbMachine
	}

	if dir := field.Direction(tile); dir != navigation.DirNone {
		cost, _ := field.Cost(tile)
		return flowDirArrows[dir], arrowColor(cost, maxCost)
	}
	return GlyphFloor, RgbFloor
}

func (v *FieldView) drawStatus(screen tcell.Screen, w, y int, status string) {
	style := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbStatusBar)
	x := 0
	for _, r := range status {
		if x >= w {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

// StatusLine formats the default status bar text
func StatusLine(field *navigation.FlowField, goal core.Point, hasGoal bool, chunks int) string {
	if !hasGoal {
		return fmt.Sprintf(" no goal | field v%d | chunks %d", field.Version, chunks)
	}
	return fmt.Sprintf(" goal (%d,%d) | field v%d %d tiles | chunks %d", goal.X, goal.Y, field.Version, field.Len(), chunks)
}
