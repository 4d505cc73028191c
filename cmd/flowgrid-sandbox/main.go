package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/flowgrid/agent"
	"github.com/lixenwraith/flowgrid/audio"
	"github.com/lixenwraith/flowgrid/config"
	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/logging"
	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/render"
	"github.com/lixenwraith/flowgrid/sim"
	"github.com/lixenwraith/flowgrid/status"
)

var (
	configFlag = flag.String("config", "", "Path to a TOML config file")
	soundFlag  = flag.Bool("sound", false, "Play cues on rebuild (overrides sandbox.sound)")
)

// sandbox holds the interactive state, touched only from scheduler-posted closures
type sandbox struct {
	sim    *sim.Sim
	view   *render.FieldView
	screen tcell.Screen
	player *audio.Player

	facing core.Point // Last move direction, target of wall toggles
	camera core.Point
	paused bool
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowgrid-sandbox: %v\n", err)
		os.Exit(1)
	}
	if *soundFlag {
		cfg.Sandbox.Sound = true
	}

	log, closer, err := logging.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowgrid-sandbox: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	// Terminal owns stderr while the UI is up
	if cfg.Log.File == "" {
		log.SetOutput(io.Discard)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowgrid-sandbox: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mFLOWGRID CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	s, err := sim.New(cfg, status.NewRegistry(), log, sim.Options{})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "flowgrid-sandbox: %v\n", err)
		os.Exit(1)
	}

	sb := &sandbox{
		sim:    s,
		view:   &render.FieldView{Map: s.World, Agents: s.Agents, TileSize: cfg.World.TileSize},
		screen: screen,
		player: audio.NewPlayer(),
		facing: core.Point{X: 1},
	}
	if cfg.Sandbox.Sound {
		if err := sb.player.Init(); err != nil {
			log.WithError(err).Warn("audio unavailable, continuing without sound")
		}
		defer sb.player.Close()
	}

	s.SpawnGoal(core.Point{})
	s.SpawnFollowers(core.Point{}, cfg.Sim.Followers, cfg.World.Seed)
	s.Rebuilder.OnPublish = func(*navigation.FlowField, navigation.Reason) {
		sb.player.Play(audio.CueRebuilt)
	}
	s.Scheduler.OnTick = func(uint64) { sb.draw() }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Scheduler.Run(ctx, s.TickInterval(), 0)
	}()

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					cancel()
					return
				}
				if fn := sb.action(ev); fn != nil {
					s.Scheduler.Post(fn)
				}
			}
		}
	}()

	<-done
}

// action maps a key to a mutation applied at the start of the next tick
func (sb *sandbox) action(ev *tcell.EventKey) func() {
	switch ev.Key() {
	case tcell.KeyUp:
		return func() { sb.moveGoal(core.Point{Y: -1}) }
	case tcell.KeyDown:
		return func() { sb.moveGoal(core.Point{Y: 1}) }
	case tcell.KeyLeft:
		return func() { sb.moveGoal(core.Point{X: -1}) }
	case tcell.KeyRight:
		return func() { sb.moveGoal(core.Point{X: 1}) }
	}

	switch ev.Rune() {
	case 'w':
		return func() { sb.moveGoal(core.Point{Y: -1}) }
	case 's':
		return func() { sb.moveGoal(core.Point{Y: 1}) }
	case 'a':
		return func() { sb.moveGoal(core.Point{X: -1}) }
	case 'd':
		return func() { sb.moveGoal(core.Point{X: 1}) }
	case 'x':
		return sb.toggleWall
	case 'r':
		return sb.forceRebuild
	case 'g':
		return sb.toggleGoal
	case 'f':
		return func() {
			if tile, ok := sb.sim.Goals.CurrentGoalTile(); ok {
				sb.sim.SpawnFollowers(tile, 8, uint64(sb.sim.Scheduler.Tick()))
			}
		}
	case 'p':
		return func() {
			sb.paused = !sb.paused
			sb.sim.Navigation.SetEnabled(!sb.paused)
		}
	}
	return nil
}

func (sb *sandbox) moveGoal(d core.Point) {
	sb.facing = d
	goal, ok := sb.sim.Goals.Goal()
	if !ok {
		sb.player.Play(audio.CueNoGoal)
		return
	}
	ts := sb.sim.Config.World.TileSize
	next := core.TileFromWorld(goal.Pos, ts).Add(d)
	if !sb.sim.World.IsWalkable(next) {
		sb.player.Play(audio.CueBlocked)
		return
	}
	goal.Pos = core.WorldFromTile(next, ts)
}

func (sb *sandbox) toggleWall() {
	tile, ok := sb.sim.Goals.CurrentGoalTile()
	if !ok {
		sb.player.Play(audio.CueNoGoal)
		return
	}
	if err := sb.sim.World.Toggle(tile.Add(sb.facing)); err != nil {
		sb.player.Play(audio.CueBlocked)
	}
}

func (sb *sandbox) forceRebuild() {
	if _, ok := sb.sim.Goals.Goal(); !ok {
		sb.player.Play(audio.CueNoGoal)
	}
	sb.sim.Rebuilder.MarkDirty()
}

// toggleGoal removes the goal, or respawns it at the camera
func (sb *sandbox) toggleGoal() {
	if goal, ok := sb.sim.Goals.Goal(); ok {
		sb.sim.Agents.Despawn(goal.ID)
		return
	}
	if sb.sim.World.IsWalkable(sb.camera) {
		sb.sim.Agents.Spawn(agent.RoleGoal, core.WorldFromTile(sb.camera, sb.sim.Config.World.TileSize), 0)
		return
	}
	sb.player.Play(audio.CueBlocked)
}

func (sb *sandbox) draw() {
	goal, hasGoal := sb.sim.Goals.CurrentGoalTile()
	if hasGoal {
		sb.camera = goal
	}
	field := sb.sim.Store().Snapshot()

	line := render.StatusLine(field, goal, hasGoal, sb.sim.World.ChunkCount())
	if sb.paused {
		line += " | paused"
	}
	line += " | arrows/wasd move  x wall  r rebuild  g goal  f followers  p pause  q quit"

	sb.view.Draw(sb.screen, field, sb.camera, line)
	sb.screen.Show()
}
