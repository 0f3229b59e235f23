package maze

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// FindPath searches for end from start over open edges only.
//
// The search is depth-first. At every step it moves to the unvisited open
// neighbour whose centre is closest (squared distance) to end; ties go to the
// first neighbour in lattice order. On a dead end it backtracks one node.
// The returned path runs start..end inclusive and is not necessarily shortest.
// The graph is not modified.
func FindPath(g *Graph, start, end int) ([]int, bool, error) {
	if !g.valid(start) {
		return nil, false, fmt.Errorf("%w: start %d (nodes %d)", ErrNodeOutOfRange, start, g.NodeCount())
	}
	if !g.valid(end) {
		return nil, false, fmt.Errorf("%w: end %d (nodes %d)", ErrNodeOutOfRange, end, g.NodeCount())
	}

	goal := g.nodes[end].Position
	visited := make([]bool, len(g.nodes))
	backtrack := make([]int, 0, 64)

	current := start
	visited[current] = true
	for {
		if current == end {
			return append(backtrack, current), true, nil
		}

		next, best := -1, 0.0
		for _, ei := range g.nodes[current].Links {
			c := g.connection(current, ei)
			if c.IsWall || visited[c.To] {
				continue
			}
			d := r3.Norm2(r3.Sub(g.nodes[c.To].Position, goal))
			if next < 0 || d < best {
				next, best = c.To, d
			}
		}

		if next >= 0 {
			backtrack = append(backtrack, current)
			visited[next] = true
			current = next
			continue
		}
		if len(backtrack) == 0 {
			return nil, false, nil
		}
		current = backtrack[len(backtrack)-1]
		backtrack = backtrack[:len(backtrack)-1]
	}
}

// Verify checks the spanning-tree property: every link references an edge
// touching its node, no open edge closes a cycle, and exactly NodeCount-1
// edges are open.
func Verify(g *Graph) error {
	for _, n := range g.nodes {
		for _, ei := range n.Links {
			if ei < 0 || ei >= len(g.edges) {
				return fmt.Errorf("%w: node %d links missing edge %d", ErrInvariantViolation, n.ID, ei)
			}
			if e := g.edges[ei]; e.From != n.ID && e.To != n.ID {
				return fmt.Errorf("%w: node %d links foreign edge %d-%d", ErrInvariantViolation, n.ID, e.From, e.To)
			}
		}
	}

	uf := NewUnionFind(len(g.nodes))
	open := 0
	for _, e := range g.edges {
		if e.IsWall {
			continue
		}
		open++
		if !uf.Union(e.From, e.To) {
			return fmt.Errorf("%w: open edge %d-%d closes a cycle", ErrInvariantViolation, e.From, e.To)
		}
	}
	if want := len(g.nodes) - 1; open != want {
		return fmt.Errorf("%w: %d open edges, want %d (%d components)", ErrInvariantViolation, open, want, uf.Sets())
	}
	return nil
}
