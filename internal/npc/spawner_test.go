package npc

import (
	"bytes"
	"fmt"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justicemango/internal/model"
	"justicemango/internal/random"
)

func newTestSpawner(t *testing.T, rng random.Source) (*Spawner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s := NewSpawner(rng, log.New(&buf, "", 0))
	seq := 0
	s.SetIDGenerator(func() string {
		seq++
		return fmt.Sprintf("npc-%d", seq)
	})
	return s, &buf
}

func TestSpawnerRefusesOverCapacity(t *testing.T) {
	s, logs := newTestSpawner(t, random.New(1))
	s.SetMaxNPCs(2)
	cfg := manualConfig(Stationary)

	for i := 0; i < 2; i++ {
		_, err := s.Spawn(cfg, 0)
		require.NoError(t, err)
	}
	n, err := s.Spawn(cfg, 0)
	assert.ErrorIs(t, err, ErrCapacityReached)
	assert.Nil(t, n)
	assert.Equal(t, 2, s.ActiveCount())
	assert.Contains(t, logs.String(), "maximum NPC count reached")
}

func TestSpawnerRemoveAndClear(t *testing.T) {
	s, _ := newTestSpawner(t, random.New(1))
	a, err := s.Spawn(manualConfig(Stationary), 0)
	require.NoError(t, err)
	b, err := s.Spawn(manualConfig(Stationary), 0)
	require.NoError(t, err)

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	assert.Equal(t, 1, s.ActiveCount())

	got, ok := s.Get("npc-2")
	require.True(t, ok)
	assert.Same(t, b, got)

	s.Clear()
	assert.Equal(t, 0, s.ActiveCount())
	assert.Empty(t, s.Active())
}

func TestSpawnerActiveReturnsCopy(t *testing.T) {
	s, _ := newTestSpawner(t, random.New(1))
	_, err := s.Spawn(manualConfig(Stationary), 0)
	require.NoError(t, err)

	snap := s.Active()
	snap[0] = nil
	assert.NotNil(t, s.Active()[0])
}

func TestSpawnRandomUsesRegisteredPreset(t *testing.T) {
	rng := random.NewScript().WithInts(1)
	s, _ := newTestSpawner(t, rng)

	_, err := s.SpawnRandom(model.Vec2{}, 0)
	require.ErrorIs(t, err, ErrNoPresets)

	for name, cfg := range DefaultPresets() {
		s.AddPreset(name, cfg)
	}
	names := s.Presets()
	require.Len(t, names, 5)

	n, err := s.SpawnRandom(model.Vec2{X: 7}, 3)
	require.NoError(t, err)
	assert.Equal(t, names[1], n.NPCID())
	assert.Equal(t, model.Vec2{X: 7}, n.Position)
	assert.Equal(t, 3.0, n.SpawnedAt)
}

func TestSpawnedNPCDoesNotAliasPreset(t *testing.T) {
	s, _ := newTestSpawner(t, random.New(1))
	cfg := manualConfig(Patrol)
	s.AddPreset("walker", cfg)

	cfg.MoveSpeed = 50
	stored, ok := s.Preset("walker")
	require.True(t, ok)
	assert.Equal(t, 1.0, stored.MoveSpeed)

	n, err := s.SpawnPreset("walker", model.Vec2{X: 2}, 0)
	require.NoError(t, err)
	n.Update(1, 1)

	stored, _ = s.Preset("walker")
	assert.Equal(t, model.Vec2{}, stored.Position)
	assert.Equal(t, 3.0, n.Position.X)

	_, err = s.SpawnPreset("missing", model.Vec2{}, 0)
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestSpawnerUpdateAdvancesEveryNPC(t *testing.T) {
	s, _ := newTestSpawner(t, random.New(1))
	cfg := manualConfig(Patrol)
	cfg.PatrolRange = 10
	for i := 0; i < 3; i++ {
		_, err := s.Spawn(cfg, 0)
		require.NoError(t, err)
	}
	s.Update(0.5, 0.5)
	for _, n := range s.Active() {
		assert.InDelta(t, 0.5, n.Position.X, 1e-9)
	}
}
