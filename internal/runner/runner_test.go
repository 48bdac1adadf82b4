package runner

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justicemango/internal/random"
	"justicemango/internal/session"
)

func newRunner(t *testing.T) (*Runner, *ManualClock, *session.Session) {
	t.Helper()
	logger := log.New(&bytes.Buffer{}, "", 0)
	sess := session.New(session.Options{}, session.Deps{Rand: random.New(1), Logger: logger})
	require.NoError(t, sess.StartGame())
	clock := NewManualClock(time.Unix(0, 0))
	r := New(sess, Options{Interval: time.Millisecond, Clock: clock, Logger: logger})
	return r, clock, sess
}

func startRunner(t *testing.T, r *Runner) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, done
}

func TestStepUsesClockDelta(t *testing.T) {
	r, clock, sess := newRunner(t)

	clock.Advance(100 * time.Millisecond)
	dt := r.Step()
	assert.InDelta(t, 0.1, dt, 1e-9)
	assert.InDelta(t, 180-0.1, sess.TimeRemaining(), 1e-9)

	snap := r.Snapshot()
	assert.Equal(t, session.StateRunning, snap.State)
	assert.InDelta(t, 0.1, snap.WorldTime, 1e-9)
	assert.Equal(t, uint64(1), r.Ticks())
}

func TestStepCapsLongGaps(t *testing.T) {
	r, clock, sess := newRunner(t)

	clock.Advance(5 * time.Second)
	dt := r.Step()
	assert.InDelta(t, DefaultMaxStep.Seconds(), dt, 1e-9)
	assert.InDelta(t, 180-DefaultMaxStep.Seconds(), sess.TimeRemaining(), 1e-9)

	// no time passed, nothing to do
	assert.Equal(t, 0.0, r.Step())
}

func TestDoRunsBetweenTicks(t *testing.T) {
	r, _, _ := newRunner(t)
	_, _ = startRunner(t, r)

	ctx := context.Background()
	require.NoError(t, r.Do(ctx, func(s *session.Session) error { return s.Pause() }))
	assert.Equal(t, session.StatePaused, r.Snapshot().State)

	err := r.Do(ctx, func(s *session.Session) error { return s.StartGame() })
	assert.ErrorIs(t, err, session.ErrAlreadyStarted)
}

func TestDoRecoversFromPanic(t *testing.T) {
	r, _, _ := newRunner(t)
	_, _ = startRunner(t, r)

	ctx := context.Background()
	err := r.Do(ctx, func(*session.Session) error { panic("boom") })
	require.Error(t, err)

	var score int
	require.NoError(t, r.Do(ctx, func(s *session.Session) error {
		s.AddScore(5)
		score = s.Score()
		return nil
	}))
	assert.Equal(t, 5, score)
}

func TestRunStopsOnCancel(t *testing.T) {
	r, _, _ := newRunner(t)
	cancel, done := startRunner(t, r)
	require.Eventually(t, r.Running, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}

	err := r.Do(context.Background(), func(*session.Session) error { return nil })
	assert.ErrorIs(t, err, ErrStopped)
	assert.ErrorIs(t, r.Run(context.Background()), ErrAlreadyRunning)
}

func TestDoHonorsContext(t *testing.T) {
	r, _, _ := newRunner(t)

	// never started, so the command cannot be delivered
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := r.Do(ctx, func(*session.Session) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
