package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gyaneshwarpardhi/livemaze/internal/maze"
)

// ErrInvalid marks a reloaded config that was rejected by Validate.
var ErrInvalid = errors.New("config: rejected")

// Validate checks the config for:
//   - Required fields
//   - Non-positive dimensions or tile size (rejected, never clamped)
//   - Unknown or unimplemented algorithms
//   - Scheduler settings out of range
//   - Empty or duplicate effect types
func Validate(cfg *MazeConfig) error {
	if cfg.Version == "" {
		return fmt.Errorf("config: version is required")
	}
	var errs []string

	m := cfg.Maze
	if m.Rows <= 0 {
		errs = append(errs, fmt.Sprintf("maze.rows must be positive, got %d", m.Rows))
	}
	if m.Columns <= 0 {
		errs = append(errs, fmt.Sprintf("maze.columns must be positive, got %d", m.Columns))
	}
	if m.TileSize <= 0 {
		errs = append(errs, fmt.Sprintf("maze.tile_size must be positive, got %v", m.TileSize))
	}
	if alg, err := maze.ParseAlgorithm(m.Algorithm); err != nil {
		errs = append(errs, fmt.Sprintf("maze.algorithm: %v", err))
	} else if _, err := maze.CarverFor(alg); err != nil {
		errs = append(errs, fmt.Sprintf("maze.algorithm: %v", err))
	}
	if m.MaxCarveAttempts < 0 {
		errs = append(errs, fmt.Sprintf("maze.max_carve_attempts must not be negative, got %d", m.MaxCarveAttempts))
	}

	s := cfg.Scheduler
	if s.IntervalMs < 0 {
		errs = append(errs, fmt.Sprintf("scheduler.interval_ms must not be negative, got %d", s.IntervalMs))
	}
	if s.FrameRate <= 0 {
		errs = append(errs, fmt.Sprintf("scheduler.frame_rate must be positive, got %d", s.FrameRate))
	}

	seen := make(map[string]int)
	for i, e := range cfg.Effects {
		if e.Type == "" {
			errs = append(errs, fmt.Sprintf("effects[%d]: type is required", i))
			continue
		}
		if prev, ok := seen[e.Type]; ok {
			errs = append(errs, fmt.Sprintf("duplicate effect %q (effects[%d] and effects[%d])", e.Type, prev, i))
			continue
		}
		seen[e.Type] = i
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
