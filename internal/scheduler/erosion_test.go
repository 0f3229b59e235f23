package scheduler

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/gyaneshwarpardhi/livemaze/internal/maze"
)

func carved(t *testing.T, rows, cols int, seed uint64) *maze.Graph {
	t.Helper()
	g, err := maze.BuildGrid(maze.Params{Rows: rows, Columns: cols, TileSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	maze.DFSCarver{}.Carve(g, rand.New(rand.NewPCG(seed, 0)))
	return g
}

func TestErosionTracker_FirstAdvancePrimes(t *testing.T) {
	tr := NewErosionTracker()
	d := tr.Advance(carved(t, 4, 4, 1))
	if len(d.Retained)+len(d.Eroded)+len(d.Raised) != 0 {
		t.Errorf("first Advance produced %+v", d)
	}
	if tr.Len() != 0 {
		t.Errorf("erosion set len = %d, want 0", tr.Len())
	}
}

func TestErosionTracker_SameGenerationRetainsAll(t *testing.T) {
	g := carved(t, 5, 6, 2)
	tr := NewErosionTracker()
	tr.Advance(g)
	d := tr.Advance(g)
	if len(d.Eroded) != 0 || len(d.Raised) != 0 {
		t.Errorf("unchanged walls reported as transitions: %+v", d)
	}
	if tr.Len() != len(g.Walls()) {
		t.Errorf("erosion set len = %d, want %d", tr.Len(), len(g.Walls()))
	}
}

func TestErosionTracker_MatchesByEdgeKey(t *testing.T) {
	// Two differently sized grids enumerate edges in different orders. Keys
	// shared by both must still match.
	a := carved(t, 3, 3, 5)
	b := carved(t, 3, 4, 5)
	tr := NewErosionTracker()
	tr.Advance(a)
	d := tr.Advance(b)

	inA := make(map[maze.EdgeKey]bool)
	for _, e := range a.Walls() {
		inA[e.Key()] = true
	}
	var want []maze.EdgeKey
	for _, e := range b.Walls() {
		if inA[e.Key()] {
			want = append(want, e.Key())
		}
	}
	slices.SortFunc(want, func(x, y maze.EdgeKey) int {
		if x.Less(y) {
			return -1
		}
		if y.Less(x) {
			return 1
		}
		return 0
	})
	if !slices.Equal(d.Retained, want) {
		t.Errorf("retained = %v, want %v", d.Retained, want)
	}
	if !slices.Equal(tr.Erosion(), want) {
		t.Errorf("Erosion() = %v, want %v", tr.Erosion(), want)
	}
}

func TestWorkerPool_SubmitAndDrain(t *testing.T) {
	var n atomic.Int32
	p := newWorkerPool(context.Background(), 2, 4, func(_ context.Context, v int) { n.Add(int32(v)) })
	for i := 1; i <= 4; i++ {
		if !p.Submit(i) {
			// Workers may not have picked anything up yet; a full queue is fine.
			continue
		}
	}
	p.Drain()
	p.Drain()
	if n.Load() == 0 {
		t.Error("no jobs processed")
	}
	if p.QueueLen() != 0 {
		t.Errorf("queue len = %d after drain", p.QueueLen())
	}
}

func TestWorkerPool_SubmitAfterDrain(t *testing.T) {
	p := newWorkerPool(context.Background(), 1, 1, func(context.Context, int) {})
	p.Drain()
	if p.Submit(1) {
		t.Error("Submit accepted a job after Drain")
	}
}
