package navigation

import (
	"testing"

	"github.com/lixenwraith/flowgrid/vmath"
)

func TestOpenSetPopsInDistanceOrder(t *testing.T) {
	const n = 200
	dist := make([]int, n)
	set := newOpenSet(dist)
	rng := vmath.NewFastRand(7)

	for i := range dist {
		dist[i] = 1000 + rng.Intn(500)
		set.update(i)
	}
	// Lower every third cell while queued
	for i := 0; i < n; i += 3 {
		dist[i] -= 800
		set.update(i)
	}
	if set.len() != n {
		t.Fatalf("len = %d, want %d: a cell was queued twice", set.len(), n)
	}

	seen := make([]bool, n)
	prev, prevIdx := -1, -1
	for set.len() > 0 {
		idx := set.pop()
		if seen[idx] {
			t.Fatalf("cell %d popped twice", idx)
		}
		seen[idx] = true
		d := dist[idx]
		if d < prev || (d == prev && idx < prevIdx) {
			t.Fatalf("pop order broken: %d@%d after %d@%d", idx, d, prevIdx, prev)
		}
		prev, prevIdx = d, idx
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("cell %d never popped", i)
		}
	}
}

func TestOpenSetReset(t *testing.T) {
	dist := []int{5, 3, 9, 1}
	set := newOpenSet(dist)
	set.update(0)
	set.update(2)
	set.reset()
	if set.len() != 0 {
		t.Fatalf("len after reset = %d", set.len())
	}

	// Cells cleared by reset queue fresh
	set.update(2)
	set.update(3)
	if got := set.pop(); got != 3 {
		t.Errorf("pop = %d, want 3", got)
	}
	if got := set.pop(); got != 2 {
		t.Errorf("pop = %d, want 2", got)
	}
}
