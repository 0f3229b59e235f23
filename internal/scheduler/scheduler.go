// Package scheduler drives live mutation of a maze: it counts host ticks, kicks
// off a new generation whenever the interval elapses and diffs each new wall
// list against the previous one for erosion effects.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/livemaze/internal/config"
	"github.com/gyaneshwarpardhi/livemaze/internal/event"
	"github.com/gyaneshwarpardhi/livemaze/internal/hooks"
	"github.com/gyaneshwarpardhi/livemaze/internal/maze"
	"github.com/gyaneshwarpardhi/livemaze/internal/metrics"
)

// ErrStopped is returned by GenerateAsync after Shutdown.
var ErrStopped = errors.New("scheduler: stopped")

// Effects receives one call per wall transition. hooks.Chain satisfies it.
type Effects interface {
	Trigger(ctx context.Context, t event.Transition) error
}

// TickResult is returned by Tick when a generation was applied during the tick.
type TickResult struct {
	JobID string
	Graph *maze.Graph
	Diff  Diff
}

type job struct {
	id   string
	done func(*maze.Graph, error)
}

type carveResult struct {
	job   job
	graph *maze.Graph
	err   error
}

// Scheduler owns the interval clock and the erosion bookkeeping for one maze.
// Tick must be called from a single goroutine (the host loop). GenerateAsync,
// the accessors and SetConfig are safe from any goroutine.
type Scheduler struct {
	maze    *maze.Maze
	spawner hooks.Spawner
	effects Effects
	tracker *ErosionTracker

	mu       sync.Mutex
	conf     config.SchedulerConf
	elapsed  time.Duration
	lastDiff Diff
	lastJob  string

	inFlight atomic.Bool
	closed   atomic.Bool
	results  chan carveResult
	pool     *workerPool[job]
	cancel   context.CancelFunc
}

// New wires a scheduler around m. spawner and effects may be nil.
func New(ctx context.Context, m *maze.Maze, conf config.SchedulerConf, spawner hooks.Spawner, effects Effects) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	s := &Scheduler{
		maze:    m,
		spawner: spawner,
		effects: effects,
		tracker: NewErosionTracker(),
		conf:    conf,
		results: make(chan carveResult, 1),
		cancel:  cancel,
	}
	s.pool = newWorkerPool(ctx, 1, 1, s.runJob)
	return s
}

// Start carves and publishes the first generation synchronously and primes the
// erosion tracker with it. The erosion set is empty afterwards.
func (s *Scheduler) Start(ctx context.Context) (*maze.Graph, error) {
	g, err := s.maze.Generate()
	if err != nil {
		return nil, fmt.Errorf("initial generation: %w", err)
	}
	s.tracker.Advance(g)
	metrics.ErosionSetSize.Set(0)
	s.spawn(ctx, g)
	return g, nil
}

// SetConfig swaps the scheduler settings. The elapsed clock is kept.
func (s *Scheduler) SetConfig(conf config.SchedulerConf) {
	s.mu.Lock()
	s.conf = conf
	s.mu.Unlock()
}

// Config returns the active scheduler settings.
func (s *Scheduler) Config() config.SchedulerConf {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conf
}

// Tick advances the interval clock by dt. Completed background carves are
// applied first. When the interval expires a new carve starts: on the worker in
// async mode, inline otherwise. A non-nil TickResult means a generation was
// published during this call.
//
// An error is returned only for a carve that exhausted its validation
// attempts; the host should treat it as fatal.
func (s *Scheduler) Tick(ctx context.Context, dt time.Duration) (*TickResult, error) {
	if ctx.Err() != nil || s.closed.Load() {
		return nil, nil
	}
	var res *TickResult
	select {
	case r := <-s.results:
		applied, err := s.handOff(ctx, r)
		if err != nil {
			return nil, err
		}
		res = applied
	default:
	}

	s.mu.Lock()
	conf := s.conf
	interval := conf.Interval()
	due := false
	if interval > 0 {
		s.elapsed += dt
		if s.elapsed >= interval {
			s.elapsed = 0
			due = true
		}
	}
	s.mu.Unlock()
	if !due {
		return res, nil
	}

	if conf.Async {
		_, err := s.GenerateAsync(nil)
		switch {
		case errors.Is(err, ErrStopped):
			slog.Info("interval elapsed after shutdown, not dispatching", "interval", interval)
		case err != nil:
			slog.Warn("interval elapsed while a carve is in flight, skipping", "interval", interval)
		}
		return res, nil
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		metrics.CarvesRejected.Inc()
		slog.Warn("interval elapsed while a carve is in flight, skipping", "interval", interval)
		return res, nil
	}
	g, err := s.maze.Carve()
	if err != nil {
		s.inFlight.Store(false)
		if errors.Is(err, maze.ErrCarveInFlight) {
			slog.Warn("maze busy, skipping interval", "interval", interval)
			return res, nil
		}
		return nil, err
	}
	id := uuid.New().String()
	diff := s.apply(ctx, id, g)
	s.inFlight.Store(false)
	return &TickResult{JobID: id, Graph: g, Diff: diff}, nil
}

// GenerateAsync queues a carve on the background worker and returns its job id.
// The result is handed off on the next Tick, which publishes it and then calls
// done (if non-nil). It fails with maze.ErrCarveInFlight when a carve is
// already running or awaiting hand-off.
func (s *Scheduler) GenerateAsync(done func(*maze.Graph, error)) (string, error) {
	if s.closed.Load() {
		return "", ErrStopped
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		metrics.CarvesRejected.Inc()
		return "", maze.ErrCarveInFlight
	}
	j := job{id: uuid.New().String(), done: done}
	if !s.pool.Submit(j) {
		s.inFlight.Store(false)
		if s.closed.Load() {
			return "", ErrStopped
		}
		metrics.CarvesRejected.Inc()
		return "", maze.ErrCarveInFlight
	}
	slog.Debug("carve dispatched", "job", j.id)
	return j.id, nil
}

// InFlight reports whether a carve is running or waiting to be handed off.
func (s *Scheduler) InFlight() bool { return s.inFlight.Load() }

// Elapsed returns time accumulated toward the next interval.
func (s *Scheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Erosion returns the current erosion set.
func (s *Scheduler) Erosion() []maze.EdgeKey { return s.tracker.Erosion() }

// LastDiff returns the diff produced by the most recent generation and the job
// that produced it.
func (s *Scheduler) LastDiff() (string, Diff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastJob, s.lastDiff
}

// Shutdown stops the worker. A carve already running is allowed to finish.
// Later GenerateAsync calls fail with ErrStopped and Tick becomes a no-op.
func (s *Scheduler) Shutdown() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.pool.Drain()
	s.cancel()
}

func (s *Scheduler) runJob(ctx context.Context, j job) {
	g, err := s.maze.Carve()
	select {
	case s.results <- carveResult{job: j, graph: g, err: err}:
	case <-ctx.Done():
		s.inFlight.Store(false)
	}
}

// handOff applies a finished background carve on the tick goroutine.
func (s *Scheduler) handOff(ctx context.Context, r carveResult) (*TickResult, error) {
	defer s.inFlight.Store(false)
	if r.err != nil {
		if r.job.done != nil {
			r.job.done(nil, r.err)
		}
		if errors.Is(r.err, maze.ErrCarveInFlight) {
			slog.Warn("background carve found maze busy", "job", r.job.id)
			return nil, nil
		}
		slog.Error("background carve failed", "job", r.job.id, "err", r.err)
		return nil, r.err
	}
	diff := s.apply(ctx, r.job.id, r.graph)
	if r.job.done != nil {
		r.job.done(r.graph, nil)
	}
	return &TickResult{JobID: r.job.id, Graph: r.graph, Diff: diff}, nil
}

// apply publishes g, advances the erosion bookkeeping and fires the callbacks.
func (s *Scheduler) apply(ctx context.Context, jobID string, g *maze.Graph) Diff {
	s.maze.Publish(g)
	diff := s.tracker.Advance(g)
	metrics.ErosionSetSize.Set(float64(len(diff.Retained)))

	s.mu.Lock()
	s.lastDiff = diff
	s.lastJob = jobID
	erode := s.conf.ErodeOldWalls
	s.mu.Unlock()

	s.spawn(ctx, g)
	if erode {
		s.trigger(ctx, g, diff.Eroded, event.Eroded)
		s.trigger(ctx, g, diff.Raised, event.Raised)
	}
	slog.Debug("erosion diff applied",
		"job", jobID,
		"retained", len(diff.Retained),
		"eroded", len(diff.Eroded),
		"raised", len(diff.Raised),
	)
	return diff
}

func (s *Scheduler) spawn(ctx context.Context, g *maze.Graph) {
	if s.spawner == nil {
		return
	}
	if err := s.spawner.Spawn(ctx, g); err != nil {
		slog.Warn("spawn callback failed", "generation", g.Info.ID, "err", err)
	}
}

func (s *Scheduler) trigger(ctx context.Context, g *maze.Graph, keys []maze.EdgeKey, kind event.TransitionKind) {
	if s.effects == nil || len(keys) == 0 {
		return
	}
	now := time.Now()
	for _, k := range keys {
		mid := g.WallMidpoint(maze.Edge{From: k.From, To: k.To})
		t := event.Transition{
			ID:         uuid.New().String(),
			Generation: g.Info.ID,
			From:       k.From,
			To:         k.To,
			Kind:       kind,
			Midpoint:   event.Point{X: mid.X, Y: mid.Y, Z: mid.Z},
			OccurredAt: now,
		}
		if err := s.effects.Trigger(ctx, t); err != nil {
			slog.Warn("transition effect failed", "from", k.From, "to", k.To, "kind", kind, "err", err)
		}
	}
	metrics.TransitionsTriggered.WithLabelValues(string(kind)).Add(float64(len(keys)))
}
