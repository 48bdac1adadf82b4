// Package serverapp assembles a playable game from configuration: the
// session and its collaborators, the real-time runner and the HTTP
// handler. Both binaries bootstrap through it.
package serverapp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"justicemango/internal/config"
	"justicemango/internal/httpapi"
	"justicemango/internal/random"
	"justicemango/internal/reaction"
	"justicemango/internal/runner"
	"justicemango/internal/session"
	"justicemango/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// LoadEnvFile loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	logger.Printf("[serverapp] loaded environment from %s", path)
	return nil
}

// LoadConfig loads and sanitizes the config at path. When optional is set a
// missing file falls back to built-in defaults.
func LoadConfig(path string, optional bool, logger *log.Logger) (*config.Config, error) {
	if logger == nil {
		logger = log.Default()
	}
	cfg, err := config.Load(path)
	if err != nil && optional && errors.Is(err, fs.ErrNotExist) {
		logger.Printf("[config] %s not found, using defaults", path)
		cfg, err = config.Load("")
	}
	if err != nil {
		return nil, err
	}
	for _, n := range cfg.Sanitize() {
		logger.Printf("[config] %s", n)
	}
	return cfg, nil
}

// Game is a session wired to its collaborators but not yet ticking.
type Game struct {
	Config    *config.Config
	Reactions *reaction.Table
	Events    *telemetry.MemoryRepository
	Session   *session.Session
	Seed      int64
}

// NewGame builds a session from cfg. A zero cfg.Seed draws a random seed.
func NewGame(cfg *config.Config, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}
	rng, err := random.NewSeeded(cfg.Seed)
	if err != nil {
		return nil, err
	}
	table := reaction.LoadOrDefault(cfg.ReactionsPath, logger)
	events := telemetry.NewMemoryRepository()
	sess := session.New(cfg.SessionOptions(table.Global()), session.Deps{
		Rand:      rng,
		Reactions: table,
		Telemetry: events,
		Logger:    logger,
	})
	logger.Printf("[serverapp] game ready: difficulty=%s seed=%d reactions=%d", cfg.Difficulty, rng.Seed(), table.Len())
	return &Game{
		Config:    cfg,
		Reactions: table,
		Events:    events,
		Session:   sess,
		Seed:      rng.Seed(),
	}, nil
}

type Options struct {
	Config *config.Config
	Logger *log.Logger
	// Clock defaults to the wall clock.
	Clock runner.Clock
}

// App is a started game behind an HTTP handler.
type App struct {
	*Game
	Runner  *runner.Runner
	Handler http.Handler
	logger  *log.Logger
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	game, err := NewGame(opts.Config, opts.Logger)
	if err != nil {
		return nil, err
	}
	if err := game.Session.StartGame(); err != nil {
		return nil, err
	}

	r := runner.New(game.Session, runner.Options{
		Interval: opts.Config.Server.TickInterval,
		Clock:    opts.Clock,
		Logger:   opts.Logger,
	})
	h, err := httpapi.NewHandler(httpapi.Options{
		Runner: r,
		Events: game.Events,
		Config: opts.Config,
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &App{Game: game, Runner: r, Handler: h, logger: opts.Logger}, nil
}

// Serve runs the tick loop and the HTTP server until ctx is done, then
// shuts the server down gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Server.Addr,
		Handler:           a.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	runDone := make(chan error, 1)
	go func() { runDone <- a.Runner.Run(ctx) }()

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Printf("listening on http://localhost%s", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-runDone
}
