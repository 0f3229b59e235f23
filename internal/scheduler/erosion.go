package scheduler

import (
	"sync"

	"github.com/tidwall/btree"

	"github.com/gyaneshwarpardhi/livemaze/internal/maze"
)

// Diff is the outcome of comparing two successive generations' wall lists.
type Diff struct {
	// Retained edges are walls in both generations; they form the erosion set.
	Retained []maze.EdgeKey `json:"retained"`
	// Eroded edges were walls and are now open.
	Eroded []maze.EdgeKey `json:"eroded"`
	// Raised edges are walls now but were open (or absent) before.
	Raised []maze.EdgeKey `json:"raised"`
}

func edgeKeyLess(a, b maze.EdgeKey) bool { return a.Less(b) }

// ErosionTracker keeps the previous generation's walls and the current erosion
// set. Edges are matched by (from, to) key, so the edge order of either
// generation does not matter.
type ErosionTracker struct {
	mu      sync.RWMutex
	primed  bool
	walls   *btree.BTreeG[maze.EdgeKey]
	erosion *btree.BTreeG[maze.EdgeKey]
}

// NewErosionTracker returns an empty tracker.
func NewErosionTracker() *ErosionTracker {
	return &ErosionTracker{
		walls:   btree.NewBTreeG(edgeKeyLess),
		erosion: btree.NewBTreeG(edgeKeyLess),
	}
}

// Advance diffs g against the retained wall list and then replaces that list
// with g's walls. The first call only records g and returns an empty Diff.
func (t *ErosionTracker) Advance(g *maze.Graph) Diff {
	next := btree.NewBTreeG(edgeKeyLess)
	for _, e := range g.Walls() {
		next.Set(e.Key())
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var d Diff
	erosion := btree.NewBTreeG(edgeKeyLess)
	if t.primed {
		next.Scan(func(k maze.EdgeKey) bool {
			if _, ok := t.walls.Get(k); ok {
				d.Retained = append(d.Retained, k)
				erosion.Set(k)
			} else {
				d.Raised = append(d.Raised, k)
			}
			return true
		})
		t.walls.Scan(func(k maze.EdgeKey) bool {
			if _, ok := next.Get(k); !ok {
				d.Eroded = append(d.Eroded, k)
			}
			return true
		})
	}
	t.walls = next
	t.erosion = erosion
	t.primed = true
	return d
}

// Erosion returns the current erosion set in key order.
func (t *ErosionTracker) Erosion() []maze.EdgeKey {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.erosion.Items()
}

// Len returns the size of the erosion set.
func (t *ErosionTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.erosion.Len()
}

// Contains reports whether k is in the erosion set.
func (t *ErosionTracker) Contains(k maze.EdgeKey) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.erosion.Get(k)
	return ok
}
