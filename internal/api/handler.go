package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/livemaze/internal/config"
	"github.com/gyaneshwarpardhi/livemaze/internal/maze"
	"github.com/gyaneshwarpardhi/livemaze/internal/scheduler"
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	maze   *maze.Maze
	sched  *scheduler.Scheduler
	loader *config.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(m *maze.Maze, sched *scheduler.Scheduler, loader *config.Loader) http.Handler {
	h := &Handler{maze: m, sched: sched, loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /v1/maze", h.getMaze)
	h.mux.HandleFunc("GET /v1/maze/stats", h.getStats)
	h.mux.HandleFunc("GET /v1/maze/path", h.getPath)
	h.mux.HandleFunc("POST /v1/maze/regenerate", h.regenerate)
	h.mux.HandleFunc("GET /v1/erosion", h.getErosion)
	h.mux.HandleFunc("GET /v1/config", h.getConfig)
	h.mux.HandleFunc("POST /v1/config/reload", h.reloadConfig)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return recoveryMiddleware(loggingMiddleware(h.mux))
}

// current writes 503 and returns nil when nothing is published yet.
func (h *Handler) current(w http.ResponseWriter) *maze.Graph {
	g := h.maze.Current()
	if g == nil {
		writeError(w, http.StatusServiceUnavailable, maze.ErrNotGenerated.Error())
	}
	return g
}

// GET /v1/maze: current snapshot; ?walls=only returns just the wall list.
func (h *Handler) getMaze(w http.ResponseWriter, r *http.Request) {
	g := h.current(w)
	if g == nil {
		return
	}
	wallsOnly := r.URL.Query().Get("walls") == "only"
	writeJSON(w, http.StatusOK, toSnapshot(g, wallsOnly))
}

// GET /v1/maze/stats
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	g := h.current(w)
	if g == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"generation": toGeneration(g.Info),
		"stats":      maze.Analyze(g),
	})
}

// GET /v1/maze/path?start=&end=: defaults to the corner-to-corner query.
func (h *Handler) getPath(w http.ResponseWriter, r *http.Request) {
	g := h.current(w)
	if g == nil {
		return
	}
	start, err := intParam(r, "start", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := intParam(r, "end", g.NodeCount()-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	path, ok, err := maze.FindPath(g, start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if path == nil {
		path = []int{}
	}
	writeJSON(w, http.StatusOK, pathDTO{Start: start, End: end, Reachable: ok, Path: path})
}

// POST /v1/maze/regenerate: queue a background carve.
func (h *Handler) regenerate(w http.ResponseWriter, r *http.Request) {
	jobID, err := h.sched.GenerateAsync(nil)
	switch {
	case errors.Is(err, maze.ErrCarveInFlight):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, scheduler.ErrStopped):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id": jobID,
		"status": "queued",
	})
}

// GET /v1/erosion
func (h *Handler) getErosion(w http.ResponseWriter, r *http.Request) {
	jobID, diff := h.sched.LastDiff()
	writeJSON(w, http.StatusOK, erosionDTO{
		JobID:    jobID,
		InFlight: h.sched.InFlight(),
		Erosion:  toEdgeKeys(h.sched.Erosion()),
		Last:     diff,
	})
}

// GET /v1/config
func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.loader.Config())
}

// POST /v1/config/reload: re-read the file; OnChange subscribers apply it.
// A rejected config leaves the running one in place.
func (h *Handler) reloadConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.loader.Reload()
	if errors.Is(err, config.ErrInvalid) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded": true,
		"version":  cfg.Version,
	})
}

// GET /healthz: always 200 (liveness check).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz: 503 until the first generation is published.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	g := h.maze.Current()
	if g == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "carving",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ready",
		"generation": g.Info.ID,
		"in_flight":  h.sched.InFlight(),
	})
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, raw)
	}
	return v, nil
}
