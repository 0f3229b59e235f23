package config

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gyaneshwarpardhi/livemaze/internal/maze"
)

// Params converts the maze section into carve parameters.
func (c MazeConf) Params() (maze.Params, error) {
	alg, err := maze.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return maze.Params{}, err
	}
	p := maze.Params{
		Rows:        c.Rows,
		Columns:     c.Columns,
		TileSize:    c.TileSize,
		Origin:      r3.Vec{X: c.Origin.X, Y: c.Origin.Y, Z: c.Origin.Z},
		Algorithm:   alg,
		Seed:        c.Seed,
		MaxAttempts: c.MaxCarveAttempts,
	}
	return p, p.Validate()
}

// Interval returns the mutation period; zero means never.
func (c SchedulerConf) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// FramePeriod returns the host tick period.
func (c SchedulerConf) FramePeriod() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}

// EffectTypes lists the configured effect types in order.
func (c *MazeConfig) EffectTypes() []string {
	out := make([]string, 0, len(c.Effects))
	for _, e := range c.Effects {
		out = append(out, e.Type)
	}
	return out
}
