package core

import "math"

// WorldPos is a continuous position in pixels
// World Y grows upward, so tile row y sits at world Y = -(y+0.5)*tileSize
type WorldPos struct {
	X, Y float64
}

// TileFromWorld converts a sprite-centred world position to the tile it occupies
// Tile centres sit half a tile in from the tile's corner, so the span of tile x is [x, x+1)*tileSize
func TileFromWorld(pos WorldPos, tileSize float64) Point {
	return Point{
		X: int(math.Floor(pos.X / tileSize)),
		Y: int(math.Floor(-pos.Y / tileSize)),
	}
}

// WorldFromTile returns the world position of the centre of tile p
func WorldFromTile(p Point, tileSize float64) WorldPos {
	return WorldPos{
		X: (float64(p.X) + 0.5) * tileSize,
		Y: -(float64(p.Y) + 0.5) * tileSize,
	}
}

// Sub returns the vector from q to p
func (p WorldPos) Sub(q WorldPos) WorldPos {
	return WorldPos{p.X - q.X, p.Y - q.Y}
}

// Len returns the Euclidean length of p as a vector
func (p WorldPos) Len() float64 {
	return math.Hypot(p.X, p.Y)
}
