package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRand_IntRangeIsInclusive(t *testing.T) {
	r := New(42)

	seenMin, seenMax := false, false
	for i := 0; i < 2000; i++ {
		v := r.IntRange(1, 2)
		require.True(t, v == 1 || v == 2, "got %d", v)
		if v == 1 {
			seenMin = true
		}
		if v == 2 {
			seenMax = true
		}
	}
	assert.True(t, seenMin)
	assert.True(t, seenMax)
}

func TestRand_DegenerateBounds(t *testing.T) {
	r := New(1)

	assert.Equal(t, 5, r.IntRange(5, 5))
	assert.Equal(t, 5, r.IntRange(5, 2))
	assert.Equal(t, 3.0, r.Range(3, 3))
	assert.Equal(t, 0, r.Intn(0))
}

func TestRand_RangeStaysInHalfOpenInterval(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := r.Range(10, 300)
		require.GreaterOrEqual(t, v, 10.0)
		require.Less(t, v, 300.0)
	}
}

func TestRand_SameSeedSameSequence(t *testing.T) {
	a, b := New(99), New(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
	assert.Equal(t, int64(99), a.Seed())
}

func TestNewSeeded_ZeroDrawsSeed(t *testing.T) {
	r, err := NewSeeded(0)
	require.NoError(t, err)
	require.NotNil(t, r)

	fixed, err := NewSeeded(12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), fixed.Seed())
}

func TestScript_ReplaysAndClamps(t *testing.T) {
	s := NewScript(0.25, 1.5).WithInts(7, -3, 100)

	assert.Equal(t, 0.25, s.Float64())
	assert.Less(t, s.Float64(), 1.0)
	assert.Equal(t, 0.0, s.Float64(), "drained floats return 0")

	assert.Equal(t, 7, s.IntRange(1, 10))
	assert.Equal(t, 1, s.IntRange(1, 10), "below min clamps")
	assert.Equal(t, 10, s.IntRange(1, 10), "above max clamps")
	assert.Equal(t, 4, s.IntRange(4, 9), "drained ints return min")
}
