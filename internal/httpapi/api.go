// Package httpapi exposes a running game over JSON HTTP. Reads come from
// the runner's published snapshot; commands are queued onto the runner so
// they never race a tick.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"justicemango/internal/config"
	"justicemango/internal/runner"
	"justicemango/internal/session"
	"justicemango/internal/telemetry"
)

const serviceName = "justicemango"

// commandTimeout bounds how long a request waits for the tick goroutine.
const commandTimeout = 2 * time.Second

var ErrNoRunner = errors.New("runner is required")

type Options struct {
	Runner *runner.Runner
	Events telemetry.Repository
	// Config is served read-only at GET /api/config when set.
	Config *config.Config
	Logger *log.Logger
}

type API struct {
	runner *runner.Runner
	events telemetry.Repository
	cfg    *config.Config
	routes *RouteRegistry
	logger *log.Logger
	boot   time.Time
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Runner == nil {
		return nil, ErrNoRunner
	}
	if opts.Events == nil {
		opts.Events = telemetry.Discard{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	api := &API{
		runner: opts.Runner,
		events: opts.Events,
		cfg:    opts.Config,
		routes: &RouteRegistry{},
		logger: opts.Logger,
		boot:   time.Now().UTC(),
	}
	mux := http.NewServeMux()
	api.Register(mux)

	return Chain(
		mux,
		WithRequestID,
		WithAccessLog(opts.Logger),
		WithRecover(opts.Logger),
	), nil
}

// Register mounts every route on mux.
func (a *API) Register(mux *http.ServeMux) {
	rr := a.routes

	handle(mux, rr, "GET /healthz", "Liveness", "", a.health)
	handle(mux, rr, "GET /api/state", "Full game snapshot", "", a.state)
	handle(mux, rr, "GET /api/npcs", "Live NPCs", "", a.npcs)
	handle(mux, rr, "GET /api/stats", "Session totals and telemetry summary", "", a.stats)
	handle(mux, rr, "GET /api/config", "Effective configuration", "", a.showConfig)
	handle(mux, rr, "GET /api/routes", "This list", "", a.listRoutes)

	handle(mux, rr, "POST /api/capture", "Take a photo", "", a.capture)
	handle(mux, rr, "POST /api/start", "Start a fresh game", "", a.command(func(s *session.Session) error {
		return s.StartGame()
	}))
	handle(mux, rr, "POST /api/pause", "Pause", "", a.command(func(s *session.Session) error {
		return s.Pause()
	}))
	handle(mux, rr, "POST /api/resume", "Resume", "", a.command(func(s *session.Session) error {
		return s.Resume()
	}))
	handle(mux, rr, "POST /api/restart", "Restart the game", "", a.command(func(s *session.Session) error {
		if err := a.events.Clear(); err != nil {
			a.logger.Printf("[httpapi] clear telemetry: %v", err)
		}
		return s.Restart()
	}))
	handle(mux, rr, "POST /api/move", "Set horizontal input", `{"axis":-1}`, a.move)
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": serviceName,
		"running": a.runner.Running(),
		"ticks":   a.runner.Ticks(),
		"since":   a.boot.Format(time.RFC3339),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.runner.Snapshot())
}

func (a *API) npcs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.runner.Snapshot().NPCs)
}

func (a *API) stats(w http.ResponseWriter, r *http.Request) {
	events, err := a.events.GetEvents(0, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summary, err := telemetry.CalculateStats(events)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session":   a.runner.Snapshot().Stats,
		"telemetry": summary,
	})
}

func (a *API) showConfig(w http.ResponseWriter, r *http.Request) {
	if a.cfg == nil {
		writeError(w, http.StatusNotFound, "no config loaded")
		return
	}
	writeJSON(w, http.StatusOK, a.cfg)
}

func (a *API) listRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.routes.List())
}

func (a *API) capture(w http.ResponseWriter, r *http.Request) {
	var res session.Resolution
	err := a.do(r.Context(), func(s *session.Session) error {
		var err error
		res, err = s.Capture()
		return err
	})
	if err != nil {
		writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) move(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Axis *float64 `json:"axis"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if body.Axis == nil {
		writeError(w, http.StatusBadRequest, "axis is required")
		return
	}

	var axis float64
	err := a.do(r.Context(), func(s *session.Session) error {
		if s.IsEnded() {
			return session.ErrEnded
		}
		s.SetMoveInput(*body.Axis)
		axis = s.MoveInput()
		return nil
	})
	if err != nil {
		writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"axis": axis})
}

// command adapts a session command into a handler that replies with the
// snapshot taken right after it ran.
func (a *API) command(fn func(*session.Session) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var snap session.Snapshot
		err := a.do(r.Context(), func(s *session.Session) error {
			if err := fn(s); err != nil {
				return err
			}
			snap = s.Snapshot()
			return nil
		})
		if err != nil {
			writeCommandError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func (a *API) do(ctx context.Context, fn func(*session.Session) error) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	return a.runner.Do(ctx, fn)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrEnded),
		errors.Is(err, session.ErrNotRunning),
		errors.Is(err, session.ErrPaused),
		errors.Is(err, session.ErrAlreadyStarted):
		return http.StatusConflict
	case errors.Is(err, runner.ErrStopped),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeCommandError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
