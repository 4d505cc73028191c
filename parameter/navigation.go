package parameter

// Navigation - Flow Field
const (
	// NavFlowRadius is the default Chebyshev radius (tiles) around the goal covered by the flow field
	NavFlowRadius = 50

	// NavCostCardinal is the edge weight of an orthogonal step
	NavCostCardinal = 10

	// NavCostDiagonal is the edge weight of a diagonal step, 10√2 rounded
	NavCostDiagonal = 14
)
