package hooks

import (
	"context"

	"github.com/gyaneshwarpardhi/livemaze/internal/event"
	"github.com/gyaneshwarpardhi/livemaze/internal/maze"
)

// Spawner receives every newly published generation ("spawn meshes for this graph").
type Spawner interface {
	Spawn(ctx context.Context, g *maze.Graph) error
}

// Effect is one transition-effect implementation ("trigger effect for this edge").
type Effect interface {
	// Type returns the string key this effect is registered under.
	Type() string
	// Trigger plays the effect for a single edge transition.
	Trigger(ctx context.Context, t event.Transition) error
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(ctx context.Context, g *maze.Graph) error

func (f SpawnerFunc) Spawn(ctx context.Context, g *maze.Graph) error { return f(ctx, g) }
