package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gyaneshwarpardhi/livemaze/internal/api"
	"github.com/gyaneshwarpardhi/livemaze/internal/config"
	"github.com/gyaneshwarpardhi/livemaze/internal/hooks"
	"github.com/gyaneshwarpardhi/livemaze/internal/maze"
	"github.com/gyaneshwarpardhi/livemaze/internal/scheduler"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cfgPath := flag.String("config", "configs/maze.yaml", "Path to maze YAML config")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}
	params, err := cfg.Maze.Params()
	if err != nil {
		slog.Error("invalid maze parameters", "err", err)
		os.Exit(1)
	}

	// ── Maze + effects ───────────────────────────────────────────────────────
	m, err := maze.New(params)
	if err != nil {
		slog.Error("failed to create maze", "err", err)
		os.Exit(1)
	}

	reg := hooks.NewRegistry()
	reg.Register(hooks.NewLogEffect())
	effects, err := reg.Select(cfg.EffectTypes())
	if err != nil {
		slog.Error("unknown effect", "err", err, "registered", reg.Types())
		os.Exit(1)
	}

	// ── Scheduler ────────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, m, cfg.Scheduler, hooks.LogSpawner{}, effects)
	g, err := sched.Start(ctx)
	if err != nil {
		slog.Error("initial generation failed", "err", err)
		os.Exit(1)
	}
	slog.Info("maze ready", "rows", g.Rows(), "columns", g.Columns(), "algorithm", g.Info.Algorithm)

	// ── Hot-reload watcher ───────────────────────────────────────────────────
	loader.OnChange(func(newCfg *config.MazeConfig) {
		p, err := newCfg.Maze.Params()
		if err != nil {
			slog.Warn("hot-reload skipped: maze parameters invalid", "err", err)
			return
		}
		if err := m.Configure(p); err != nil {
			slog.Warn("hot-reload skipped: maze rejected parameters", "err", err)
			return
		}
		sched.SetConfig(newCfg.Scheduler)
		slog.Info("config hot-reloaded; applies from the next generation",
			"rows", p.Rows, "columns", p.Columns, "algorithm", p.Algorithm)
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		slog.Info("watching config for changes", "path", loader.Path())
		defer stopWatch()
	}

	// ── Frame loop ───────────────────────────────────────────────────────────
	fatal := make(chan error, 1)
	go runFrames(ctx, sched, fatal)

	// ── HTTP server ──────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.New(m, sched, loader),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal <- err
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	exitCode := 0
	select {
	case <-quit:
		slog.Info("shutting down…")
	case err := <-fatal:
		slog.Error("fatal error, shutting down", "err", err)
		exitCode = 1
	}

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	cancel()
	sched.Shutdown()
	slog.Info("goodbye")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// runFrames is the host loop: it ticks the scheduler at the configured frame
// rate until ctx ends or a tick reports an invariant violation.
func runFrames(ctx context.Context, sched *scheduler.Scheduler, fatal chan<- error) {
	period := sched.Config().FramePeriod()
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			res, err := sched.Tick(ctx, dt)
			if err != nil {
				fatal <- err
				return
			}
			if res != nil {
				slog.Info("maze mutated",
					"job", res.JobID,
					"generation", res.Graph.Info.ID,
					"erosion", len(res.Diff.Retained),
					"eroded", len(res.Diff.Eroded),
					"raised", len(res.Diff.Raised),
				)
			}
			if p := sched.Config().FramePeriod(); p != period {
				period = p
				ticker.Reset(period)
			}
		}
	}
}
