package maze

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/livemaze/internal/metrics"
)

// Maze is the topology aggregate. It owns the published graph, runs at most
// one carve at a time and swaps each completed generation in atomically, so a
// partially carved graph is never visible to readers.
type Maze struct {
	mu     sync.RWMutex
	params Params

	carving sync.Mutex
	current atomic.Pointer[Graph]
	seq     atomic.Uint64
}

// New validates p and returns a Maze with nothing published yet.
func New(p Params) (*Maze, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Maze{params: p}, nil
}

// Params returns the configuration the next carve will use.
func (m *Maze) Params() Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params
}

// Configure replaces the parameters for subsequent carves. The published
// graph is left untouched until the next generation.
func (m *Maze) Configure(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.params = p
	m.mu.Unlock()
	return nil
}

// Current returns the published graph, or nil before the first generation.
func (m *Maze) Current() *Graph {
	return m.current.Load()
}

// Generate carves a new generation and publishes it.
func (m *Maze) Generate() (*Graph, error) {
	g, err := m.Carve()
	if err != nil {
		return nil, err
	}
	m.Publish(g)
	return g, nil
}

// Carve builds, carves and validates a private graph without publishing it.
// It returns ErrCarveInFlight if another carve on m has not finished.
func (m *Maze) Carve() (*Graph, error) {
	if !m.carving.TryLock() {
		metrics.CarvesRejected.Inc()
		return nil, ErrCarveInFlight
	}
	defer m.carving.Unlock()
	return carve(m.Params(), m.seq.Add(1))
}

// Publish swaps g in as the current generation.
func (m *Maze) Publish(g *Graph) {
	m.current.Store(g)
	metrics.GenerationsPublished.WithLabelValues(g.Info.Algorithm.String()).Inc()
	metrics.OpenEdges.Set(float64(g.OpenEdgeCount()))
	slog.Info("maze generation published",
		"generation", g.Info.ID,
		"seq", g.Info.Sequence,
		"algorithm", g.Info.Algorithm,
		"rows", g.Rows(),
		"columns", g.Columns(),
		"attempts", g.Info.Attempts,
		"duration", g.Info.CarveDuration,
	)
}

// IsReachable runs the connectivity search on the published graph.
func (m *Maze) IsReachable(start, end int) (bool, []int, error) {
	g := m.Current()
	if g == nil {
		return false, nil, ErrNotGenerated
	}
	path, ok, err := FindPath(g, start, end)
	return ok, path, err
}

func carve(p Params, seq uint64) (*Graph, error) {
	carver, err := CarverFor(p.Algorithm)
	if err != nil {
		return nil, err
	}
	return carveWith(carver, p, seq)
}

// carveWith runs grid build, carver and validation, resetting and retrying
// until the maze is valid or the attempt budget is spent.
func carveWith(carver Carver, p Params, seq uint64) (*Graph, error) {
	g, err := BuildGrid(p)
	if err != nil {
		return nil, err
	}

	seed := p.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seq))

	alg := carver.Algorithm()
	start := time.Now()
	goal := g.NodeCount() - 1
	for attempt := 1; ; attempt++ {
		carver.Carve(g, rng)

		_, reachable, _ := FindPath(g, 0, goal)
		verr := Verify(g)
		if reachable && verr == nil {
			elapsed := time.Since(start)
			metrics.CarveDuration.WithLabelValues(alg.String()).Observe(elapsed.Seconds())
			g.Info = GenerationInfo{
				ID:            uuid.New().String(),
				Sequence:      seq,
				Algorithm:     alg,
				Seed:          seed,
				Attempts:      attempt,
				CarveDuration: elapsed,
				CreatedAt:     time.Now(),
			}
			return g, nil
		}

		metrics.ValidationRetries.Inc()
		slog.Warn("carved maze failed validation",
			"algorithm", alg,
			"attempt", attempt,
			"reachable", reachable,
			"err", verr,
		)
		if attempt >= p.attempts() {
			return nil, fmt.Errorf("%w: %s on %dx%d grid failed %d attempts (last: %v)",
				ErrInvariantViolation, alg, p.Rows, p.Columns, attempt, verr)
		}
		g.ResetWalls()
	}
}
