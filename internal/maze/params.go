package maze

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Algorithm selects the carving strategy.
type Algorithm int

const (
	RandomDFS Algorithm = iota
	RandomKruskal
	// RandomPrim is reserved; configuring it yields ErrAlgorithmUnsupported.
	RandomPrim
)

var algorithmNames = map[Algorithm]string{
	RandomDFS:     "random_dfs",
	RandomKruskal: "random_kruskal",
	RandomPrim:    "random_prim",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// ParseAlgorithm maps a config name to an Algorithm. Matching is case-insensitive
// and accepts "-" in place of "_".
func ParseAlgorithm(name string) (Algorithm, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for alg, n := range algorithmNames {
		if n == key {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// DefaultMaxAttempts bounds the carve-and-validate loop.
const DefaultMaxAttempts = 3

// Params describes one maze instance.
type Params struct {
	Rows      int
	Columns   int
	TileSize  float64
	Origin    r3.Vec
	Algorithm Algorithm
	// Seed of zero draws a fresh seed for every generation.
	Seed        uint64
	MaxAttempts int
}

// NodeCount is rows·columns.
func (p Params) NodeCount() int { return p.Rows * p.Columns }

// Validate rejects non-positive dimensions, a non-positive tile size and
// algorithms that have no carver.
func (p Params) Validate() error {
	if p.Rows <= 0 || p.Columns <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, p.Rows, p.Columns)
	}
	if p.TileSize <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTileSize, p.TileSize)
	}
	switch p.Algorithm {
	case RandomDFS, RandomKruskal:
	case RandomPrim:
		return fmt.Errorf("%w: %s", ErrAlgorithmUnsupported, p.Algorithm)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, p.Algorithm)
	}
	if p.MaxAttempts < 0 {
		return fmt.Errorf("maze: max attempts must not be negative, got %d", p.MaxAttempts)
	}
	return nil
}

func (p Params) attempts() int {
	if p.MaxAttempts == 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}
