package navigation

// openSet is a binary min-heap of window cells keyed by the builder's distance table
// A cell is queued at most once; lowering a queued cell's distance sifts it up in place,
// so the search never pops stale entries
type openSet struct {
	cells []int32 // Heap of window indices
	slot  []int32 // Per-cell position in cells, -1 when not queued
	dist  []int   // Shared with the builder
}

func newOpenSet(dist []int) openSet {
	slot := make([]int32, len(dist))
	for i := range slot {
		slot[i] = -1
	}
	return openSet{
		cells: make([]int32, 0, len(dist)/4),
		slot:  slot,
		dist:  dist,
	}
}

// reset empties the set, only queued cells need their slot cleared
func (h *openSet) reset() {
	for _, c := range h.cells {
		h.slot[c] = -1
	}
	h.cells = h.cells[:0]
}

func (h *openSet) len() int {
	return len(h.cells)
}

// less orders by distance, then by window index so pops are reproducible
func (h *openSet) less(i, j int) bool {
	a, b := h.cells[i], h.cells[j]
	if da, db := h.dist[a], h.dist[b]; da != db {
		return da < db
	}
	return a < b
}

func (h *openSet) swap(i, j int) {
	h.cells[i], h.cells[j] = h.cells[j], h.cells[i]
	h.slot[h.cells[i]] = int32(i)
	h.slot[h.cells[j]] = int32(j)
}

// update queues idx or restores heap order after its distance dropped
func (h *openSet) update(idx int) {
	i := int(h.slot[idx])
	if i < 0 {
		i = len(h.cells)
		h.cells = append(h.cells, int32(idx))
		h.slot[idx] = int32(i)
	}
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

// pop removes and returns the cell with the smallest distance
func (h *openSet) pop() int {
	top := h.cells[0]
	last := len(h.cells) - 1
	h.swap(0, last)
	h.cells = h.cells[:last]
	h.slot[top] = -1

	i := 0
	for {
		smallest := i
		if l := 2*i + 1; l < last && h.less(l, smallest) {
			smallest = l
		}
		if r := 2*i + 2; r < last && h.less(r, smallest) {
			smallest = r
		}
		if smallest == i {
			break
		}
		h.swap(i, smallest)
		i = smallest
	}
	return int(top)
}
