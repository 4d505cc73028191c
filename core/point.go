package core

// Point is a tile coordinate on the unbounded grid
// Y grows downward (south), matching screen rows
type Point struct {
	X, Y int
}

// Add returns p offset by q
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the offset from q to p
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Chebyshev returns the king-move distance between p and q
func (p Point) Chebyshev(q Point) int {
	return max(abs(p.X-q.X), abs(p.Y-q.Y))
}

// IsNeighbor returns true if q is one of p's 8 adjacent tiles
func (p Point) IsNeighbor(q Point) bool {
	return p != q && p.Chebyshev(q) == 1
}

// IsDiagonalTo returns true if q is a diagonal neighbor of p
func (p Point) IsDiagonalTo(q Point) bool {
	return abs(p.X-q.X) == 1 && abs(p.Y-q.Y) == 1
}

// Neighbor8 holds the 8 neighbor offsets in scan order: Δy outer, Δx inner, both ascending
// Equal-cost ties resolve to the first offset in this order (north-west first)
var Neighbor8 = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
