package world

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/flowgrid/core"
)

var (
	ErrChunkNotLoaded = errors.New("world: chunk not loaded")
	ErrOccupied       = errors.New("world: tile occupied")
	ErrEmpty          = errors.New("world: tile empty")
)

// MutationListener is notified after a tile's walkability may have changed
type MutationListener func(tile core.Point)

// ChunkListener is notified after a chunk is loaded, generated or unloaded
type ChunkListener func(coord core.ChunkCoord)

// Map is chunked structure storage over the unbounded tile grid
// Owned by the tick goroutine; not safe for concurrent mutation
type Map struct {
	chunkSize int
	chunks    map[core.ChunkCoord]*Chunk

	onMutate []MutationListener
	onLoad   []ChunkListener
	onUnload []ChunkListener
}

// NewMap creates an empty map with the given chunk edge length
func NewMap(chunkSize int) (*Map, error) {
	if chunkSize <= 0 {
		return nil, errors.Errorf("world: chunk size must be positive, got %d", chunkSize)
	}
	return &Map{
		chunkSize: chunkSize,
		chunks:    make(map[core.ChunkCoord]*Chunk),
	}, nil
}

// ChunkSize returns the chunk edge length in tiles
func (m *Map) ChunkSize() int {
	return m.chunkSize
}

// OnMutate registers a listener for structure placement and removal
func (m *Map) OnMutate(fn MutationListener) {
	m.onMutate = append(m.onMutate, fn)
}

// OnChunkLoaded registers a listener for chunk loads
func (m *Map) OnChunkLoaded(fn ChunkListener) {
	m.onLoad = append(m.onLoad, fn)
}

// OnChunkUnloaded registers a listener for chunk unloads
func (m *Map) OnChunkUnloaded(fn ChunkListener) {
	m.onUnload = append(m.onUnload, fn)
}

// Chunk returns the loaded chunk at c
func (m *Map) Chunk(c core.ChunkCoord) (*Chunk, bool) {
	ch, ok := m.chunks[c]
	return ch, ok
}

// Loaded returns true if chunk c is present
func (m *Map) Loaded(c core.ChunkCoord) bool {
	_, ok := m.chunks[c]
	return ok
}

// ChunkCount returns the number of loaded chunks
func (m *Map) ChunkCount() int {
	return len(m.chunks)
}

// LoadChunk inserts or replaces a chunk and notifies chunk listeners
func (m *Map) LoadChunk(ch *Chunk) {
	m.chunks[ch.Coord] = ch
	for _, fn := range m.onLoad {
		fn(ch.Coord)
	}
}

// UnloadChunk drops chunk c; its tiles become unwalkable
func (m *Map) UnloadChunk(c core.ChunkCoord) bool {
	if _, ok := m.chunks[c]; !ok {
		return false
	}
	delete(m.chunks, c)
	for _, fn := range m.onUnload {
		fn(c)
	}
	return true
}

// StructureAt returns the structure on p, false if p's chunk is not loaded
func (m *Map) StructureAt(p core.Point) (Structure, bool) {
	ch, ok := m.chunks[core.ChunkOf(p, m.chunkSize)]
	if !ok {
		return StructureNone, false
	}
	return ch.At(core.LocalOf(p, m.chunkSize)), true
}

// IsWalkable returns true if p's chunk is loaded and p holds no structure
// Unloaded chunks are blocked so routes never cross unexplored space
func (m *Map) IsWalkable(p core.Point) bool {
	s, loaded := m.StructureAt(p)
	return loaded && s == StructureNone
}

// Place registers a structure on an empty tile of a loaded chunk
func (m *Map) Place(p core.Point, s Structure) error {
	if s == StructureNone {
		return m.Remove(p)
	}
	ch, ok := m.chunks[core.ChunkOf(p, m.chunkSize)]
	if !ok {
		return errors.Wrapf(ErrChunkNotLoaded, "place %v at %v", s, p)
	}
	l := core.LocalOf(p, m.chunkSize)
	if existing := ch.At(l); existing != StructureNone {
		return errors.Wrapf(ErrOccupied, "place %v at %v over %v", s, p, existing)
	}
	ch.Set(l, s)
	m.notify(p)
	return nil
}

// Remove clears the structure on p
func (m *Map) Remove(p core.Point) error {
	ch, ok := m.chunks[core.ChunkOf(p, m.chunkSize)]
	if !ok {
		return errors.Wrapf(ErrChunkNotLoaded, "remove at %v", p)
	}
	l := core.LocalOf(p, m.chunkSize)
	if ch.At(l) == StructureNone {
		return errors.Wrapf(ErrEmpty, "remove at %v", p)
	}
	ch.Set(l, StructureNone)
	m.notify(p)
	return nil
}

// Toggle places a wall on an empty tile or removes whatever is there
func (m *Map) Toggle(p core.Point) error {
	s, loaded := m.StructureAt(p)
	if !loaded {
		return errors.Wrapf(ErrChunkNotLoaded, "toggle at %v", p)
	}
	if s == StructureNone {
		return m.Place(p, StructureWall)
	}
	return m.Remove(p)
}

func (m *Map) notify(p core.Point) {
	for _, fn := range m.onMutate {
		fn(p)
	}
}
