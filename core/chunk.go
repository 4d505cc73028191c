package core

// ChunkCoord addresses a fixed-size square block of tiles
// Chunk (1,1) lies one chunk east and one chunk south of (0,0)
type ChunkCoord struct {
	X, Y int
}

// LocalTile is a tile offset inside its chunk, each axis in [0, size)
type LocalTile struct {
	X, Y int
}

// FloorDiv divides rounding toward negative infinity, b must be positive
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// FloorMod returns the non-negative remainder matching FloorDiv, b must be positive
func FloorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// ChunkOf returns the chunk containing tile p
func ChunkOf(p Point, size int) ChunkCoord {
	return ChunkCoord{FloorDiv(p.X, size), FloorDiv(p.Y, size)}
}

// LocalOf returns p's offset inside its chunk
func LocalOf(p Point, size int) LocalTile {
	return LocalTile{FloorMod(p.X, size), FloorMod(p.Y, size)}
}

// TileOf is the inverse of ChunkOf/LocalOf
func TileOf(c ChunkCoord, l LocalTile, size int) Point {
	return Point{c.X*size + l.X, c.Y*size + l.Y}
}

// Origin returns the chunk's top-left tile
func (c ChunkCoord) Origin(size int) Point {
	return Point{c.X * size, c.Y * size}
}
