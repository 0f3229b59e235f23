package maze

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Node is one maze cell.
type Node struct {
	ID       int
	Row      int
	Col      int
	Position r3.Vec
	// Visited is carver scratch state; it is cleared by ResetWalls.
	Visited bool
	// Links holds indices into the graph's edge slice in lattice order.
	Links []int
}

// EdgeKey identifies an undirected adjacency. From is always the lower id.
type EdgeKey struct {
	From int
	To   int
}

// MakeEdgeKey returns the canonical key for the pair (a, b).
func MakeEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{From: a, To: b}
}

// Less orders keys by From, then To.
func (k EdgeKey) Less(o EdgeKey) bool {
	if k.From != o.From {
		return k.From < o.From
	}
	return k.To < o.To
}

// Edge is the single record for one undirected adjacency (candidate wall).
type Edge struct {
	From   int
	To     int
	IsWall bool
}

// Key returns the edge's canonical key.
func (e Edge) Key() EdgeKey { return EdgeKey{From: e.From, To: e.To} }

// Connection is a directed view of an edge as seen from one endpoint.
type Connection struct {
	From   int
	To     int
	Edge   int
	IsWall bool
}

// GenerationInfo describes how a published graph was produced.
type GenerationInfo struct {
	ID            string
	Sequence      uint64
	Algorithm     Algorithm
	Seed          uint64
	Attempts      int
	CarveDuration time.Duration
	CreatedAt     time.Time
}

// Graph owns the node lattice and the undirected edge list of one generation.
// All cross references are indices into nodes and edges. A graph handed out by
// Maze.Current must be treated as read-only.
type Graph struct {
	rows     int
	columns  int
	tileSize float64
	origin   r3.Vec

	nodes []Node
	edges []Edge
	index map[EdgeKey]int

	Info GenerationInfo
}

// Rows returns the grid height.
func (g *Graph) Rows() int { return g.rows }

// Columns returns the grid width.
func (g *Graph) Columns() int { return g.columns }

// TileSize returns the lattice spacing.
func (g *Graph) TileSize() float64 { return g.tileSize }

// NodeCount returns rows·columns.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of undirected adjacencies.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	if !g.valid(id) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Edges returns a copy of the edge list.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Edge looks up the adjacency between a and b in either direction.
func (g *Graph) Edge(a, b int) (Edge, bool) {
	i, ok := g.index[MakeEdgeKey(a, b)]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// Connections returns the directed views of every adjacency of id.
func (g *Graph) Connections(id int) []Connection {
	if !g.valid(id) {
		return nil
	}
	links := g.nodes[id].Links
	out := make([]Connection, 0, len(links))
	for _, ei := range links {
		out = append(out, g.connection(id, ei))
	}
	return out
}

func (g *Graph) connection(id, ei int) Connection {
	e := g.edges[ei]
	to := e.To
	if to == id {
		to = e.From
	}
	return Connection{From: id, To: to, Edge: ei, IsWall: e.IsWall}
}

// Walls returns every edge that is still a wall.
func (g *Graph) Walls() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if e.IsWall {
			out = append(out, e)
		}
	}
	return out
}

// OpenEdgeCount returns the number of carved (passable) edges.
func (g *Graph) OpenEdgeCount() int {
	n := 0
	for _, e := range g.edges {
		if !e.IsWall {
			n++
		}
	}
	return n
}

// IsOpen reports whether a and b are adjacent and passable.
func (g *Graph) IsOpen(a, b int) bool {
	e, ok := g.Edge(a, b)
	return ok && !e.IsWall
}

// ResetWalls closes every edge and clears every visited flag.
func (g *Graph) ResetWalls() {
	for i := range g.edges {
		g.edges[i].IsWall = true
	}
	for i := range g.nodes {
		g.nodes[i].Visited = false
	}
}

// WallMidpoint returns the point halfway between the centres of e's endpoints.
func (g *Graph) WallMidpoint(e Edge) r3.Vec {
	a, b := g.nodes[e.From].Position, g.nodes[e.To].Position
	return r3.Scale(0.5, r3.Add(a, b))
}

// openEdge carves the edge. Both directed views derive from the one record.
func (g *Graph) openEdge(ei int) {
	g.edges[ei].IsWall = false
}

func (g *Graph) valid(id int) bool {
	return id >= 0 && id < len(g.nodes)
}
