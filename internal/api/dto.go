package api

import (
	"time"

	"github.com/gyaneshwarpardhi/livemaze/internal/maze"
	"github.com/gyaneshwarpardhi/livemaze/internal/scheduler"
)

type generationDTO struct {
	ID              string    `json:"id"`
	Sequence        uint64    `json:"sequence"`
	Algorithm       string    `json:"algorithm"`
	Seed            uint64    `json:"seed"`
	Attempts        int       `json:"attempts"`
	CarveDurationMs float64   `json:"carve_duration_ms"`
	CreatedAt       time.Time `json:"created_at"`
}

type nodeDTO struct {
	ID  int     `json:"id"`
	Row int     `json:"row"`
	Col int     `json:"col"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Z   float64 `json:"z"`
}

type edgeDTO struct {
	From int  `json:"from"`
	To   int  `json:"to"`
	Wall bool `json:"wall"`
}

type snapshotDTO struct {
	Generation generationDTO `json:"generation"`
	Rows       int           `json:"rows"`
	Columns    int           `json:"columns"`
	TileSize   float64       `json:"tile_size"`
	Nodes      []nodeDTO     `json:"nodes,omitempty"`
	Edges      []edgeDTO     `json:"edges"`
}

type pathDTO struct {
	Start     int   `json:"start"`
	End       int   `json:"end"`
	Reachable bool  `json:"reachable"`
	Path      []int `json:"path"`
}

type erosionDTO struct {
	JobID    string         `json:"job_id,omitempty"`
	InFlight bool           `json:"in_flight"`
	Erosion  []edgeDTO      `json:"erosion"`
	Last     scheduler.Diff `json:"last_diff"`
}

func toGeneration(info maze.GenerationInfo) generationDTO {
	return generationDTO{
		ID:              info.ID,
		Sequence:        info.Sequence,
		Algorithm:       info.Algorithm.String(),
		Seed:            info.Seed,
		Attempts:        info.Attempts,
		CarveDurationMs: float64(info.CarveDuration) / float64(time.Millisecond),
		CreatedAt:       info.CreatedAt,
	}
}

// toSnapshot renders g. wallsOnly drops the node list and open edges.
func toSnapshot(g *maze.Graph, wallsOnly bool) snapshotDTO {
	out := snapshotDTO{
		Generation: toGeneration(g.Info),
		Rows:       g.Rows(),
		Columns:    g.Columns(),
		TileSize:   g.TileSize(),
	}
	if wallsOnly {
		walls := g.Walls()
		out.Edges = make([]edgeDTO, 0, len(walls))
		for _, e := range walls {
			out.Edges = append(out.Edges, edgeDTO{From: e.From, To: e.To, Wall: true})
		}
		return out
	}
	out.Nodes = make([]nodeDTO, 0, g.NodeCount())
	for id := 0; id < g.NodeCount(); id++ {
		n, _ := g.Node(id)
		out.Nodes = append(out.Nodes, nodeDTO{
			ID: n.ID, Row: n.Row, Col: n.Col,
			X: n.Position.X, Y: n.Position.Y, Z: n.Position.Z,
		})
	}
	edges := g.Edges()
	out.Edges = make([]edgeDTO, 0, len(edges))
	for _, e := range edges {
		out.Edges = append(out.Edges, edgeDTO{From: e.From, To: e.To, Wall: e.IsWall})
	}
	return out
}

func toEdgeKeys(keys []maze.EdgeKey) []edgeDTO {
	out := make([]edgeDTO, 0, len(keys))
	for _, k := range keys {
		out = append(out, edgeDTO{From: k.From, To: k.To, Wall: true})
	}
	return out
}
