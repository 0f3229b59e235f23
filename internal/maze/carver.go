package maze

import (
	"fmt"
	"math/rand/v2"
)

// Carver opens a subset of a freshly built (all walls) graph so that the open
// edges form a spanning tree. Carvers run synchronously and never yield.
type Carver interface {
	Algorithm() Algorithm
	Carve(g *Graph, rng *rand.Rand)
}

// CarverFor returns the carver implementing a.
func CarverFor(a Algorithm) (Carver, error) {
	switch a {
	case RandomDFS:
		return DFSCarver{}, nil
	case RandomKruskal:
		return KruskalCarver{}, nil
	case RandomPrim:
		return nil, fmt.Errorf("%w: %s", ErrAlgorithmUnsupported, a)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, a)
}

// DFSCarver is the randomized depth-first backtracker.
type DFSCarver struct {
	// Start is the node the traversal begins at.
	Start int
}

func (DFSCarver) Algorithm() Algorithm { return RandomDFS }

// dfsFrame is one entry of the manual call stack: a node plus the shuffled
// adjacencies it has not tried yet.
type dfsFrame struct {
	node  int
	order [4]int
	count int
	next  int
}

// Carve walks the lattice depth-first from c.Start. Each node's adjacencies are
// shuffled once on entry; the first unvisited target in that order is carved
// into, and a node whose adjacencies are exhausted is popped, resuming its
// parent. The stack replaces recursion so a snake through every cell cannot
// exhaust the goroutine stack.
func (c DFSCarver) Carve(g *Graph, rng *rand.Rand) {
	if !g.valid(c.Start) {
		return
	}
	stack := make([]dfsFrame, 0, 64)
	enter := func(id int) {
		n := &g.nodes[id]
		n.Visited = true
		f := dfsFrame{node: id}
		f.count = copy(f.order[:], n.Links)
		rng.Shuffle(f.count, func(i, j int) {
			f.order[i], f.order[j] = f.order[j], f.order[i]
		})
		stack = append(stack, f)
	}

	enter(c.Start)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == top.count {
			stack = stack[:len(stack)-1]
			continue
		}
		ei := top.order[top.next]
		top.next++
		to := g.connection(top.node, ei).To
		if g.nodes[to].Visited {
			continue
		}
		g.openEdge(ei)
		enter(to)
	}
}

// KruskalCarver is randomized Kruskal's over the undirected edge list.
type KruskalCarver struct{}

func (KruskalCarver) Algorithm() Algorithm { return RandomKruskal }

// Carve draws edges uniformly at random without replacement and opens each one
// whose endpoints are still in different sets.
func (KruskalCarver) Carve(g *Graph, rng *rand.Rand) {
	uf := NewUnionFind(g.NodeCount())
	pool := make([]int, len(g.edges))
	for i := range pool {
		pool[i] = i
	}
	for len(pool) > 0 {
		i := rng.IntN(len(pool))
		ei := pool[i]
		e := g.edges[ei]
		if uf.Union(e.From, e.To) {
			g.openEdge(ei)
		}
		last := len(pool) - 1
		pool[i] = pool[last]
		pool = pool[:last]
	}
}
