package navigation

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/flowgrid/status"
)

// Outcome reports what a Rebuilder tick did
type Outcome uint8

const (
	OutcomeIdle          Outcome = iota // Nothing pending
	OutcomeRebuilt                      // Field replaced
	OutcomeSkippedNoGoal                // Pending request dropped, field unchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeRebuilt:
		return "rebuilt"
	case OutcomeSkippedNoGoal:
		return "skipped_no_goal"
	}
	return "unknown"
}

// Rebuilder drains the trigger once per tick and republishes the field when a rebuild is due
// A rebuild either fully replaces the store's field or leaves it untouched
type Rebuilder struct {
	Trigger *Trigger
	Store   *Store

	builder *Builder
	goals   GoalSource
	walk    Walkability
	log     logrus.FieldLogger

	// OnPublish, if set, is called after every successful publish
	OnPublish func(f *FlowField, reason Reason)

	statRebuilds  *atomic.Int64
	statSkipped   *atomic.Int64
	statCoalesced *atomic.Int64
	statFieldSize *atomic.Int64
	statVersion   *atomic.Int64
	statBuildMs   *status.AtomicFloat
	statBuildPeak *status.AtomicFloat
}

// NewRebuilder wires a builder of the given radius to its collaborators
// Starts with a pending manual request so the first tick produces a field
func NewRebuilder(radius int, goals GoalSource, walk Walkability, reg *status.Registry, log logrus.FieldLogger) (*Rebuilder, error) {
	builder, err := NewBuilder(radius)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	r := &Rebuilder{
		Trigger:       &Trigger{},
		Store:         NewStore(),
		builder:       builder,
		goals:         goals,
		walk:          walk,
		log:           log.WithField("component", "navigation"),
		statRebuilds:  reg.Ints.Get("nav.rebuilds"),
		statSkipped:   reg.Ints.Get("nav.skipped"),
		statCoalesced: reg.Ints.Get("nav.coalesced"),
		statFieldSize: reg.Ints.Get("nav.field_size"),
		statVersion:   reg.Ints.Get("nav.version"),
		statBuildMs:   reg.Floats.Get("nav.build_ms"),
		statBuildPeak: reg.Floats.Get("nav.build_ms_peak"),
	}
	r.Trigger.Request(ReasonManual)
	return r, nil
}

// Radius returns the field radius
func (r *Rebuilder) Radius() int {
	return r.builder.Radius()
}

// MarkDirty forces a rebuild on the next tick
func (r *Rebuilder) MarkDirty() {
	r.Trigger.Request(ReasonManual)
}

// Tick performs at most one rebuild
func (r *Rebuilder) Tick() Outcome {
	reason, requests := r.Trigger.Drain()
	if reason == 0 {
		return OutcomeIdle
	}
	if requests > 1 {
		r.statCoalesced.Add(int64(requests - 1))
	}

	goal, ok := r.goals.CurrentGoalTile()
	if !ok {
		r.statSkipped.Add(1)
		r.log.WithField("reason", reason).Debug("flow field rebuild skipped: no single goal")
		return OutcomeSkippedNoGoal
	}

	start := time.Now()
	field := r.builder.Build(goal, r.walk)
	elapsed := time.Since(start)
	version := r.Store.Publish(field)

	r.statRebuilds.Add(1)
	r.statFieldSize.Store(int64(field.Len()))
	r.statVersion.Store(int64(version))
	ms := float64(elapsed.Microseconds()) / 1000
	r.statBuildMs.Set(ms)
	r.statBuildPeak.Max(ms)

	r.log.WithFields(logrus.Fields{
		"goal":     goal,
		"reason":   reason,
		"requests": requests,
		"entries":  field.Len(),
		"version":  version,
		"elapsed":  elapsed,
	}).Debug("flow field rebuilt")

	if r.OnPublish != nil {
		r.OnPublish(field, reason)
	}
	return OutcomeRebuilt
}
