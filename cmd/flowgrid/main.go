package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/flowgrid/config"
	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/logging"
	"github.com/lixenwraith/flowgrid/navigation"
	"github.com/lixenwraith/flowgrid/network"
	"github.com/lixenwraith/flowgrid/sim"
	"github.com/lixenwraith/flowgrid/status"
)

var (
	configFlag   = flag.String("config", "", "Path to a TOML config file")
	ticksFlag    = flag.Int64("ticks", -1, "Stop after this many ticks, 0 runs until interrupted (overrides sim.max_ticks)")
	observerFlag = flag.String("observer", "", "Websocket observer listen address (overrides observer.addr)")
	statsFlag    = flag.Duration("stats", 5*time.Second, "Interval between status log lines, 0 disables")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowgrid: %v\n", err)
		os.Exit(1)
	}
	if *ticksFlag >= 0 {
		cfg.Sim.MaxTicks = *ticksFlag
	}
	if *observerFlag != "" {
		cfg.Observer.Addr = *observerFlag
	}

	log, closer, err := logging.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowgrid: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, *statsFlag); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("flowgrid stopped")
		closer.Close()
		os.Exit(1)
	}
}

// run builds the simulation and steps it until ctx ends or the tick limit is reached
func run(ctx context.Context, cfg *config.Config, log *logrus.Logger, statsEvery time.Duration) error {
	reg := status.NewRegistry()
	s, err := sim.New(cfg, reg, log, sim.Options{
		GoalWanders: cfg.Sim.GoalWanders,
		WanderEvery: cfg.Sim.TickRate / 2,
	})
	if err != nil {
		return err
	}

	origin := core.Point{}
	s.SpawnGoal(origin)
	spawned := s.SpawnFollowers(origin, cfg.Sim.Followers, cfg.World.Seed)
	log.WithFields(logrus.Fields{
		"followers": spawned,
		"radius":    cfg.Nav.Radius,
		"chunks":    s.World.ChunkCount(),
	}).Info("simulation ready")

	if cfg.Observer.Addr != "" {
		obs := network.NewObserver(log)
		defer obs.Close()
		s.Rebuilder.OnPublish = func(f *navigation.FlowField, reason navigation.Reason) {
			summary := network.Summarize(f, reason, s.Scheduler.Tick())
			summary.Metrics = reg.Snapshot()
			obs.Publish(summary)
		}

		srv := &http.Server{Addr: cfg.Observer.Addr, Handler: obs.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("observer server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.WithField("addr", cfg.Observer.Addr).Info("observer listening")
	}

	if statsEvery > 0 {
		every := max(uint64(statsEvery/s.TickInterval()), 1)
		s.Scheduler.OnTick = func(tick uint64) {
			if tick%every == 0 {
				log.WithFields(toFields(reg.Snapshot())).Info("status")
			}
		}
	}

	maxTicks := uint64(0)
	if cfg.Sim.MaxTicks > 0 {
		maxTicks = uint64(cfg.Sim.MaxTicks)
	}
	return s.Scheduler.Run(ctx, s.TickInterval(), maxTicks)
}

func toFields(m map[string]float64) logrus.Fields {
	fields := make(logrus.Fields, len(m))
	for k, v := range m {
		fields[k] = v
	}
	return fields
}
