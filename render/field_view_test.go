package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/flowgrid/agent"
	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/world"
)

const testTileSize = 16

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestFieldViewGlyphs(t *testing.T) {
	m, err := world.NewMap(8)
	if err != nil {
		t.Fatal(err)
	}
	m.Fill(core.Point{X: 0, Y: 0}, core.Point{X: 7, Y: 7})
	if err := m.Place(core.Point{X: 3, Y: 2}, world.StructureWall); err != nil {
		t.Fatal(err)
	}

	goal := core.Point{X: 2, Y: 2}
	b, err := navigation.NewBuilder(3)
	if err != nil {
		t.Fatal(err)
	}
	field := b.Build(goal, m)

	agents := agent.NewRegistry()
	agents.Spawn(agent.RoleGoal, core.WorldFromTile(goal, testTileSize), 0)
	agents.Spawn(agent.RoleFollower, core.WorldFromTile(core.Point{X: 1, Y: 3}, testTileSize), 10)

	screen := newScreen(t, 9, 6)
	view := &FieldView{Map: m, Agents: agents, TileSize: testTileSize}

	if got := view.Viewport(screen, goal); got != (core.Point{X: -2, Y: 0}) {
		t.Fatalf("viewport origin = %v, want (-2,0)", got)
	}

	view.Draw(screen, field, goal, "status")

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"unloaded chunk", 0, 0, GlyphUnloaded},
		{"wall", 5, 2, GlyphWall},
		{"goal", 4, 2, GlyphGoal},
		{"east step", 3, 2, '→'},
		{"south step", 4, 1, '↓'},
		{"diagonal step", 3, 1, '↘'},
		{"follower", 3, 3, GlyphFollower},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runeAt(screen, tt.x, tt.y); got != tt.want {
				t.Errorf("cell (%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}

	var bar strings.Builder
	for x := 0; x < 6; x++ {
		bar.WriteRune(runeAt(screen, x, 5))
	}
	if bar.String() != "status" {
		t.Errorf("status bar = %q", bar.String())
	}
}

func TestFieldViewArrowsMatchNeighbors(t *testing.T) {
	want := map[core.Point]rune{
		{X: 0, Y: -1}:  '↑',
		{X: 0, Y: 1}:   '↓',
		{X: -1, Y: 0}:  '←',
		{X: 1, Y: 0}:   '→',
		{X: 1, Y: 1}:   '↘',
		{X: -1, Y: 1}:  '↙',
		{X: 1, Y: -1}:  '↗',
		{X: -1, Y: -1}: '↖',
	}
	for i, d := range core.Neighbor8 {
		if flowDirArrows[i] != want[d] {
			t.Errorf("arrow for %v = %q, want %q", d, flowDirArrows[i], want[d])
		}
	}
}

func TestFieldViewEmptyField(t *testing.T) {
	m, _ := world.NewMap(8)
	m.Fill(core.Point{X: 0, Y: 0}, core.Point{X: 7, Y: 7})

	screen := newScreen(t, 4, 3)
	view := &FieldView{Map: m, TileSize: testTileSize}
	view.Draw(screen, navigation.NewStore().Snapshot(), core.Point{X: 4, Y: 4}, "")

	if got := runeAt(screen, 0, 0); got != GlyphFloor {
		t.Errorf("floor cell = %q, want %q", got, GlyphFloor)
	}
}

func TestStatusLine(t *testing.T) {
	store := navigation.NewStore()
	if got := StatusLine(store.Snapshot(), core.Point{}, false, 4); !strings.Contains(got, "no goal") {
		t.Errorf("status without goal = %q", got)
	}
	if got := StatusLine(store.Snapshot(), core.Point{X: 1, Y: -2}, true, 4); !strings.Contains(got, "goal (1,-2)") {
		t.Errorf("status with goal = %q", got)
	}
}
