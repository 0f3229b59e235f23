package maze

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// latticeDirections is the neighbour scan order as (dCol, dRow): right, down, left, up.
var latticeDirections = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// BuildGrid constructs the rows·columns node lattice and one closed edge per
// 4-neighbourhood adjacency. It is deterministic.
func BuildGrid(p Params) (*Graph, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := p.NodeCount()
	g := &Graph{
		rows:     p.Rows,
		columns:  p.Columns,
		tileSize: p.TileSize,
		origin:   p.Origin,
		nodes:    make([]Node, n),
		edges:    make([]Edge, 0, 2*n),
		index:    make(map[EdgeKey]int, 2*n),
	}

	for row := 0; row < p.Rows; row++ {
		for col := 0; col < p.Columns; col++ {
			id := row*p.Columns + col
			node := &g.nodes[id]
			node.ID = id
			node.Row = row
			node.Col = col
			node.Position = latticePosition(p, row, col)
			node.Links = make([]int, 0, 4)

			for _, dir := range latticeDirections {
				adjCol, adjRow := col+dir[0], row+dir[1]
				if adjCol < 0 || adjCol >= p.Columns || adjRow < 0 || adjRow >= p.Rows {
					continue
				}
				adj := adjRow*p.Columns + adjCol
				key := MakeEdgeKey(id, adj)
				ei, seen := g.index[key]
				if !seen {
					// First registration of this pair; the neighbour picks it up later.
					ei = len(g.edges)
					g.edges = append(g.edges, Edge{From: key.From, To: key.To, IsWall: true})
					g.index[key] = ei
				}
				node.Links = append(node.Links, ei)
			}
		}
	}
	return g, nil
}

// latticePosition places tiles edge to edge, growing +X with columns and -Y with rows.
func latticePosition(p Params, row, col int) r3.Vec {
	half := p.TileSize / 2
	return r3.Vec{
		X: p.Origin.X + p.TileSize*float64(col) - half,
		Y: p.Origin.Y - (p.TileSize*float64(row) + half),
		Z: p.Origin.Z,
	}
}
