package maze

import (
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Stats summarises the open-edge structure of a graph.
type Stats struct {
	Nodes      int `json:"nodes"`
	Edges      int `json:"edges"`
	OpenEdges  int `json:"open_edges"`
	Walls      int `json:"walls"`
	Components int `json:"components"`
	DeadEnds   int `json:"dead_ends"`
	// SolutionLength is the number of moves on the shortest route from the
	// first node to the last one, or -1 when no route exists.
	SolutionLength int `json:"solution_length"`
}

// Analyze computes Stats over the passable subgraph.
func Analyze(g *Graph) Stats {
	ug := simple.NewUndirectedGraph()
	for _, n := range g.nodes {
		ug.AddNode(simple.Node(n.ID))
	}
	degree := make([]int, len(g.nodes))
	st := Stats{Nodes: len(g.nodes), Edges: len(g.edges), SolutionLength: -1}
	for _, e := range g.edges {
		if e.IsWall {
			st.Walls++
			continue
		}
		st.OpenEdges++
		degree[e.From]++
		degree[e.To]++
		ug.SetEdge(simple.Edge{F: simple.Node(e.From), T: simple.Node(e.To)})
	}
	for _, d := range degree {
		if d == 1 {
			st.DeadEnds++
		}
	}
	st.Components = len(topo.ConnectedComponents(ug))

	if len(g.nodes) > 0 {
		shortest := path.DijkstraFrom(simple.Node(0), ug)
		if w := shortest.WeightTo(int64(len(g.nodes) - 1)); !math.IsInf(w, 1) {
			st.SolutionLength = int(w)
		}
	}
	return st
}
