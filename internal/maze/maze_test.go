package maze

import (
	"errors"
	"math/rand/v2"
	"testing"
)

// wallsOnlyCarver never opens anything, simulating a broken carver.
type wallsOnlyCarver struct{ calls int }

func (c *wallsOnlyCarver) Algorithm() Algorithm           { return RandomDFS }
func (c *wallsOnlyCarver) Carve(g *Graph, rng *rand.Rand) { c.calls++ }

// flakyCarver fails its first carve by opening a cycle, then defers to DFS.
type flakyCarver struct{ calls int }

func (c *flakyCarver) Algorithm() Algorithm { return RandomDFS }
func (c *flakyCarver) Carve(g *Graph, rng *rand.Rand) {
	c.calls++
	if c.calls == 1 {
		for i := range g.edges {
			g.openEdge(i)
		}
		return
	}
	DFSCarver{}.Carve(g, rng)
}

func TestMaze_GenerateBothAlgorithms(t *testing.T) {
	for _, alg := range []Algorithm{RandomDFS, RandomKruskal} {
		m, err := New(Params{Rows: 12, Columns: 9, TileSize: 2, Algorithm: alg})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		g, err := m.Generate()
		if err != nil {
			t.Fatalf("%s: Generate: %v", alg, err)
		}
		if m.Current() != g {
			t.Errorf("%s: generated graph was not published", alg)
		}
		if g.OpenEdgeCount() != g.NodeCount()-1 {
			t.Errorf("%s: %d open edges for %d nodes", alg, g.OpenEdgeCount(), g.NodeCount())
		}
		ok, path, err := m.IsReachable(0, g.NodeCount()-1)
		if err != nil || !ok || len(path) == 0 {
			t.Errorf("%s: IsReachable = %v %v %v", alg, ok, path, err)
		}
		if g.Info.ID == "" || g.Info.Algorithm != alg || g.Info.Attempts != 1 {
			t.Errorf("%s: unexpected info %+v", alg, g.Info)
		}
	}
}

func TestMaze_IsReachableBeforeGenerate(t *testing.T) {
	m, _ := New(Params{Rows: 2, Columns: 2, TileSize: 1})
	if _, _, err := m.IsReachable(0, 3); !errors.Is(err, ErrNotGenerated) {
		t.Errorf("err = %v, want ErrNotGenerated", err)
	}
}

func TestMaze_RejectsBadConfig(t *testing.T) {
	if _, err := New(Params{Rows: 0, Columns: 2, TileSize: 1}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("New err = %v", err)
	}
	m, _ := New(Params{Rows: 2, Columns: 2, TileSize: 1})
	if err := m.Configure(Params{Rows: 2, Columns: 2, TileSize: 0}); !errors.Is(err, ErrInvalidTileSize) {
		t.Errorf("Configure err = %v", err)
	}
	if m.Params().TileSize != 1 {
		t.Error("rejected params were applied")
	}
}

func TestMaze_ConfigureAppliesToNextGeneration(t *testing.T) {
	m, _ := New(Params{Rows: 2, Columns: 2, TileSize: 1})
	first, err := m.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Configure(Params{Rows: 4, Columns: 3, TileSize: 1, Algorithm: RandomKruskal}); err != nil {
		t.Fatal(err)
	}
	if m.Current() != first {
		t.Fatal("Configure replaced the published graph")
	}
	next, err := m.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if next.Rows() != 4 || next.Columns() != 3 || next.Info.Algorithm != RandomKruskal {
		t.Errorf("next generation %dx%d %s", next.Rows(), next.Columns(), next.Info.Algorithm)
	}
	if next.Info.Sequence <= first.Info.Sequence {
		t.Errorf("sequence did not advance: %d then %d", first.Info.Sequence, next.Info.Sequence)
	}
}

func TestMaze_SeedReproducible(t *testing.T) {
	p := Params{Rows: 7, Columns: 8, TileSize: 1, Seed: 77}
	a, _ := New(p)
	b, _ := New(p)
	ga, err := a.Generate()
	if err != nil {
		t.Fatal(err)
	}
	gb, err := b.Generate()
	if err != nil {
		t.Fatal(err)
	}
	ea, eb := ga.Edges(), gb.Edges()
	for i := range ea {
		if ea[i] != eb[i] {
			t.Fatalf("edge %d differs for identical seeds", i)
		}
	}
	if ga.Info.Seed != 77 {
		t.Errorf("seed recorded as %d", ga.Info.Seed)
	}
}

func TestMaze_CarveInFlightRejected(t *testing.T) {
	m, _ := New(Params{Rows: 3, Columns: 3, TileSize: 1})
	m.carving.Lock()
	_, err := m.Carve()
	m.carving.Unlock()
	if !errors.Is(err, ErrCarveInFlight) {
		t.Fatalf("err = %v, want ErrCarveInFlight", err)
	}
	if m.Current() != nil {
		t.Error("rejected carve published a graph")
	}
	if _, err := m.Generate(); err != nil {
		t.Errorf("Generate after release: %v", err)
	}
}

func TestCarveWith_RetriesThenFails(t *testing.T) {
	c := &wallsOnlyCarver{}
	_, err := carveWith(c, Params{Rows: 3, Columns: 3, TileSize: 1, MaxAttempts: 4}, 1)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("err = %v, want ErrInvariantViolation", err)
	}
	if c.calls != 4 {
		t.Errorf("carver called %d times, want 4", c.calls)
	}
}

func TestCarveWith_ResetsBetweenAttempts(t *testing.T) {
	c := &flakyCarver{}
	g, err := carveWith(c, Params{Rows: 4, Columns: 4, TileSize: 1}, 1)
	if err != nil {
		t.Fatalf("carveWith: %v", err)
	}
	if c.calls != 2 || g.Info.Attempts != 2 {
		t.Errorf("calls %d, attempts %d; want 2 and 2", c.calls, g.Info.Attempts)
	}
	if err := Verify(g); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestCarveWith_SingleCell(t *testing.T) {
	g, err := carve(Params{Rows: 1, Columns: 1, TileSize: 1}, 1)
	if err != nil {
		t.Fatalf("carve: %v", err)
	}
	if g.NodeCount() != 1 || g.EdgeCount() != 0 {
		t.Errorf("1x1 grid has %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}
