package world

import (
	"github.com/lixenwraith/flowgrid/core"
	"github.com/lixenwraith/flowgrid/vmath"
)

// Generator produces chunk content deterministically from a seed
// The same seed and coordinate always yield the same chunk
type Generator struct {
	Seed        uint64
	WallDensity float64 // Probability of a wall per eligible tile
	SafeMargin  int     // Local rows and columns 0..SafeMargin never hold walls
	Machines    bool    // Place the two starter machines at local (1,0) and (1,1)
}

// Generate builds the chunk at coord
func (g Generator) Generate(coord core.ChunkCoord, size int) *Chunk {
	ch := NewChunk(coord)
	rng := vmath.NewFastRand(vmath.SeedFor(g.Seed, coord.X, coord.Y))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Draw for every tile so the layout does not shift when the margin changes
			wall := rng.Chance(g.WallDensity)
			if x > g.SafeMargin && y > g.SafeMargin && wall {
				ch.Set(core.LocalTile{X: x, Y: y}, StructureWall)
			}
		}
	}

	if g.Machines && size > 1 {
		ch.Set(core.LocalTile{X: 1, Y: 1}, StructureMachine)
		ch.Set(core.LocalTile{X: 1, Y: 0}, StructureMachine)
	}
	return ch
}

// EnsureAround generates every missing chunk within chunkRadius chunks of tile p
// Returns the number of chunks generated
func (m *Map) EnsureAround(p core.Point, chunkRadius int, gen Generator) int {
	center := core.ChunkOf(p, m.chunkSize)
	generated := 0
	for cy := center.Y - chunkRadius; cy <= center.Y+chunkRadius; cy++ {
		for cx := center.X - chunkRadius; cx <= center.X+chunkRadius; cx++ {
			coord := core.ChunkCoord{X: cx, Y: cy}
			if m.Loaded(coord) {
				continue
			}
			m.LoadChunk(gen.Generate(coord, m.chunkSize))
			generated++
		}
	}
	return generated
}

// Fill loads empty chunks covering the tile rectangle [min, max]
// Used by tools and tests that need an open area without generation
func (m *Map) Fill(min, max core.Point) {
	lo := core.ChunkOf(min, m.chunkSize)
	hi := core.ChunkOf(max, m.chunkSize)
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			coord := core.ChunkCoord{X: cx, Y: cy}
			if !m.Loaded(coord) {
				m.LoadChunk(NewChunk(coord))
			}
		}
	}
}
