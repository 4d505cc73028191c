package world

import "github.com/lixenwraith/flowgrid/core"

// Structure is a blocking object registered on a tile
type Structure uint8

const (
	StructureNone Structure = iota
	StructureWall
	StructureMachine
)

func (s Structure) String() string {
	switch s {
	case StructureWall:
		return "wall"
	case StructureMachine:
		return "machine"
	}
	return "none"
}

// Chunk is the structure registry for one square block of tiles
type Chunk struct {
	Coord      core.ChunkCoord
	structures map[core.LocalTile]Structure
}

// NewChunk creates an empty chunk
func NewChunk(coord core.ChunkCoord) *Chunk {
	return &Chunk{
		Coord:      coord,
		structures: make(map[core.LocalTile]Structure),
	}
}

// At returns the structure on a local tile, StructureNone if empty
func (c *Chunk) At(l core.LocalTile) Structure {
	return c.structures[l]
}

// Set registers s on a local tile, StructureNone clears it
func (c *Chunk) Set(l core.LocalTile, s Structure) {
	if s == StructureNone {
		delete(c.structures, l)
		return
	}
	c.structures[l] = s
}

// Len returns the number of registered structures
func (c *Chunk) Len() int {
	return len(c.structures)
}
