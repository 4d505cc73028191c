package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/flowgrid/status"
)

// System is one stage of the fixed-rate tick
// Systems run sequentially in ascending Priority; equal priorities keep insertion order
type System interface {
	Name() string
	Priority() int
	Update(dt time.Duration)
}

// Scheduler runs registered systems once per tick on a single goroutine
// Work posted from other goroutines is applied at the start of the next tick
type Scheduler struct {
	systems []System

	postMu sync.Mutex
	posted []func()

	tickCount atomic.Uint64
	statTicks *atomic.Int64
	log       logrus.FieldLogger

	// OnTick, if set, is called after all systems have run
	OnTick func(tick uint64)
}

// NewScheduler creates an empty scheduler
func NewScheduler(reg *status.Registry, log logrus.FieldLogger) *Scheduler {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scheduler{
		statTicks: reg.Ints.Get("sim.ticks"),
		log:       log.WithField("component", "scheduler"),
	}
}

// AddSystem adds a system and sorts by priority
func (s *Scheduler) AddSystem(system System) {
	s.systems = append(s.systems, system)

	// Sort by priority (bubble sort, small N, stable)
	for i := 0; i < len(s.systems)-1; i++ {
		for j := 0; j < len(s.systems)-i-1; j++ {
			if s.systems[j].Priority() > s.systems[j+1].Priority() {
				s.systems[j], s.systems[j+1] = s.systems[j+1], s.systems[j]
			}
		}
	}
	s.log.WithFields(logrus.Fields{"system": system.Name(), "priority": system.Priority()}).Debug("system registered")
}

// Systems returns a copy of the registered systems in run order
func (s *Scheduler) Systems() []System {
	out := make([]System, len(s.systems))
	copy(out, s.systems)
	return out
}

// Post queues fn to run on the tick goroutine before the next tick's systems
// Safe to call from any goroutine
func (s *Scheduler) Post(fn func()) {
	s.postMu.Lock()
	s.posted = append(s.posted, fn)
	s.postMu.Unlock()
}

// Tick returns the number of completed ticks
func (s *Scheduler) Tick() uint64 {
	return s.tickCount.Load()
}

// Step runs one tick: posted work first, then every system in priority order
func (s *Scheduler) Step(dt time.Duration) {
	s.postMu.Lock()
	posted := s.posted
	s.posted = nil
	s.postMu.Unlock()

	for _, fn := range posted {
		fn()
	}

	for _, system := range s.systems {
		system.Update(dt)
	}

	tick := s.tickCount.Add(1)
	s.statTicks.Store(int64(tick))
	if s.OnTick != nil {
		s.OnTick(tick)
	}
}

// Run steps at a fixed interval until ctx is cancelled or maxTicks ticks have run (0 = unbounded)
// Each tick receives the nominal interval as dt so results do not depend on wall-clock jitter
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, maxTicks uint64) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.WithField("interval", interval).Info("scheduler started")
	defer s.log.WithField("ticks", s.Tick()).Info("scheduler stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Step(interval)
			if maxTicks > 0 && s.Tick() >= maxTicks {
				return nil
			}
		}
	}
}
