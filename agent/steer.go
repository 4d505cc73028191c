package agent

import (
	"math"
	"time"

	"github.com/lixenwraith/flowgrid/core"
)

// StepSource answers next-step queries, satisfied by navigation.Store and navigation.FlowField
type StepSource interface {
	NextStep(p core.Point) (core.Point, bool)
}

// Steer advances e toward the centre of its next flow-field tile
// Returns false when the field has no step for e's tile and e stays put
func Steer(e *Entity, field StepSource, dt time.Duration, tileSize, arrival float64) bool {
	tile := core.TileFromWorld(e.Pos, tileSize)
	next, ok := field.NextStep(tile)
	if !ok {
		return false
	}

	target := core.WorldFromTile(next, tileSize)
	delta := target.Sub(e.Pos)
	dist := delta.Len()
	if dist == 0 {
		return true
	}

	e.Facing = facingOf(delta)

	travel := e.Speed * dt.Seconds()
	if travel >= dist || dist-travel < arrival {
		e.Pos = target
		return true
	}
	e.Pos.X += delta.X / dist * travel
	e.Pos.Y += delta.Y / dist * travel
	return true
}

// facingOf buckets a world-space vector into 8 sectors, counter-clockwise from east
func facingOf(v core.WorldPos) Direction {
	angle := math.Atan2(v.Y, v.X)
	sector := int(math.Round(angle/(math.Pi/4))) % 8
	if sector < 0 {
		sector += 8
	}
	return Direction(sector)
}
