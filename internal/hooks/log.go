package hooks

import (
	"context"
	"log/slog"

	"github.com/gyaneshwarpardhi/livemaze/internal/event"
	"github.com/gyaneshwarpardhi/livemaze/internal/maze"
)

// LogEffect writes each transition to the structured log. It stands in for a
// visual effect when the host has no renderer attached.
type LogEffect struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewLogEffect logs through slog.Default at debug level.
func NewLogEffect() *LogEffect { return &LogEffect{Level: slog.LevelDebug} }

func (l *LogEffect) Type() string { return "log" }

func (l *LogEffect) Trigger(ctx context.Context, t event.Transition) error {
	l.logger().Log(ctx, l.Level, "wall transition",
		"generation", t.Generation,
		"from", t.From,
		"to", t.To,
		"kind", t.Kind,
		"x", t.Midpoint.X,
		"y", t.Midpoint.Y,
	)
	return nil
}

func (l *LogEffect) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// LogSpawner reports each published generation instead of placing meshes.
type LogSpawner struct {
	Logger *slog.Logger
}

func (s LogSpawner) Spawn(ctx context.Context, g *maze.Graph) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "spawn meshes",
		"generation", g.Info.ID,
		"floors", g.NodeCount(),
		"inner_walls", len(g.Walls()),
		"outer_walls", 2*(g.Rows()+g.Columns()),
	)
	return nil
}
