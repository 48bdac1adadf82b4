// Package runner drives a session in real time. One goroutine owns the
// session: it ticks on a time.Ticker and runs queued commands between
// ticks, so every command sees a consistent game.
package runner

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"justicemango/internal/session"
)

const (
	DefaultInterval = 50 * time.Millisecond
	// DefaultMaxStep caps one tick after a stall (GC pause, suspended host).
	DefaultMaxStep = 250 * time.Millisecond
)

var (
	ErrStopped        = errors.New("runner stopped")
	ErrAlreadyRunning = errors.New("runner already running")
)

type Options struct {
	Interval time.Duration
	MaxStep  time.Duration
	Clock    Clock
	Logger   *log.Logger
}

type command struct {
	fn    func(*session.Session) error
	reply chan error
}

type Runner struct {
	sess     *session.Session
	clock    Clock
	interval time.Duration
	maxStep  time.Duration
	logger   *log.Logger

	cmds    chan command
	stopped chan struct{}
	running atomic.Bool
	last    time.Time
	ticks   atomic.Uint64

	mu   sync.RWMutex
	snap session.Snapshot
}

func New(sess *session.Session, opts Options) *Runner {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxStep <= 0 {
		opts.MaxStep = DefaultMaxStep
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	r := &Runner{
		sess:     sess,
		clock:    opts.Clock,
		interval: opts.Interval,
		maxStep:  opts.MaxStep,
		logger:   opts.Logger,
		cmds:     make(chan command),
		stopped:  make(chan struct{}),
		last:     opts.Clock.Now(),
	}
	r.publish()
	return r
}

// Run ticks the session until ctx is done. It may be called once.
func (r *Runner) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(r.stopped)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.last = r.clock.Now()
	r.logger.Printf("[runner] started: interval=%v", r.interval)
	for {
		select {
		case <-ctx.Done():
			r.logger.Printf("[runner] stopped after %d ticks", r.ticks.Load())
			return nil
		case <-ticker.C:
			r.Step()
		case c := <-r.cmds:
			c.reply <- r.exec(c.fn)
		}
	}
}

// Step advances the session by the wall time since the previous step,
// capped at MaxStep, and returns the dt used. Only the goroutine that owns
// the session may call it: Run, or a test that never starts Run.
func (r *Runner) Step() float64 {
	now := r.clock.Now()
	elapsed := now.Sub(r.last)
	r.last = now
	if elapsed > r.maxStep {
		elapsed = r.maxStep
	}
	dt := elapsed.Seconds()
	if dt > 0 {
		r.sess.Tick(dt)
	}
	r.ticks.Add(1)
	r.publish()
	return dt
}

// Do runs fn on the session between ticks and returns its error. It blocks
// until fn has run, ctx is done, or the runner stops.
func (r *Runner) Do(ctx context.Context, fn func(*session.Session) error) error {
	c := command{fn: fn, reply: make(chan error, 1)}
	select {
	case r.cmds <- c:
	case <-r.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-c.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) exec(fn func(*session.Session) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Printf("[runner] command panicked: %v", rec)
			err = errors.New("command panicked")
		}
		r.publish()
	}()
	return fn(r.sess)
}

func (r *Runner) publish() {
	snap := r.sess.Snapshot()
	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()
}

// Snapshot returns the state published after the latest tick or command.
func (r *Runner) Snapshot() session.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

func (r *Runner) Ticks() uint64           { return r.ticks.Load() }
func (r *Runner) Interval() time.Duration { return r.interval }
func (r *Runner) Running() bool           { return r.running.Load() }
