package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceRunsDueTasksInOrder(t *testing.T) {
	s := New()
	var order []string
	s.After(2, func() { order = append(order, "b") })
	s.After(1, func() { order = append(order, "a") })
	s.After(2, func() { order = append(order, "c") })
	s.After(5, func() { order = append(order, "late") })

	assert.Equal(t, 0, s.Advance(0.5))
	assert.Equal(t, 3, s.Advance(1.5))
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, 2.0, s.Now())
}

func TestCancel(t *testing.T) {
	s := New()
	fired := false
	h := s.After(1, func() { fired = true })

	require.True(t, h.Active())
	assert.True(t, h.Cancel())
	assert.False(t, h.Cancel())
	assert.False(t, h.Active())

	s.Advance(2)
	assert.False(t, fired)
	assert.Equal(t, 0, s.Pending())

	var zero Handle
	assert.False(t, zero.Cancel())
}

func TestCancelAfterRun(t *testing.T) {
	s := New()
	h := s.After(0, func() {})
	s.Advance(0)
	assert.False(t, h.Cancel())
}

func TestRescheduleFromCallback(t *testing.T) {
	s := New()
	count := 0
	var loop func()
	loop = func() {
		count++
		s.After(1, loop)
	}
	s.After(1, loop)

	for i := 0; i < 5; i++ {
		s.Advance(1)
	}
	assert.Equal(t, 5, count)
	assert.Equal(t, 1, s.Pending())
}

func TestLargeStepRunsChainedTasks(t *testing.T) {
	s := New()
	var seen []float64
	s.After(1, func() {
		seen = append(seen, s.Now())
		s.After(0, func() { seen = append(seen, -1) })
	})
	s.Advance(10)
	assert.Equal(t, []float64{10, -1}, seen)
}

func TestReset(t *testing.T) {
	s := New()
	fired := false
	h := s.After(1, func() { fired = true })
	s.Advance(0.5)
	s.Reset()

	assert.Equal(t, 0.0, s.Now())
	assert.Equal(t, 0, s.Pending())
	assert.False(t, h.Active())
	s.Advance(5)
	assert.False(t, fired)
}
