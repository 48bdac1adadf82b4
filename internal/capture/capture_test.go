package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justicemango/internal/model"
	"justicemango/internal/npc"
	"justicemango/internal/random"
)

func npcAt(id string, x, y float64) *npc.NPC {
	cfg := npc.DefaultSpawnConfig()
	cfg.NPCID = id
	cfg.AutoViolation = false
	cfg.Position = model.Vec2{X: x, Y: y}
	return npc.New(id, cfg, random.New(1), 0)
}

func ids(ns []*npc.NPC) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.InstanceID)
	}
	return out
}

func TestTargetsInRange(t *testing.T) {
	candidates := []*npc.NPC{
		npcAt("ahead", 3, 0),
		npcAt("edge", 5, 0),
		npcAt("too_far", 5.01, 0),
		npcAt("behind", -2, 0),
		npcAt("wide", 1, 1),
		npcAt("narrow", 4, 1),
		npcAt("origin", 0, 0),
	}

	// wide sits 45 degrees off axis, narrow about 14
	got := TargetsInRange(model.Vec2{}, model.Right, 5, 60, candidates)
	assert.ElementsMatch(t, []string{"ahead", "edge", "narrow", "origin"}, ids(got))

	all := TargetsInRange(model.Vec2{}, model.Right, 5, 360, candidates)
	assert.ElementsMatch(t, []string{"ahead", "edge", "behind", "wide", "narrow", "origin"}, ids(all))
}

func TestTargetsInRangeFacingLeft(t *testing.T) {
	candidates := []*npc.NPC{npcAt("left", -3, 0), npcAt("right", 3, 0)}
	got := TargetsInRange(model.Vec2{}, model.Vec2{X: -1}, 5, 60, candidates)
	assert.Equal(t, []string{"left"}, ids(got))
}

func TestCameraCooldown(t *testing.T) {
	cam := DefaultCamera()
	target := []*npc.NPC{npcAt("a", 1, 0)}

	require.True(t, cam.CanCapture(0))
	assert.Equal(t, 0.0, cam.CooldownRemaining(0))

	res := cam.Trigger(10, model.Vec2{}, model.Right, target)
	assert.True(t, res.Success)
	assert.Equal(t, []string{"a"}, res.TargetIDs())
	assert.Equal(t, 10.0, res.Timestamp)

	// second press inside the cooldown is refused and does not extend it
	res = cam.Trigger(10.5, model.Vec2{}, model.Right, target)
	assert.False(t, res.Success)
	assert.Empty(t, res.Targets)
	assert.InDelta(t, 0.5, cam.CooldownRemaining(10.5), 1e-9)

	assert.True(t, cam.CanCapture(11))
	last, ok := cam.LastCapture()
	require.True(t, ok)
	assert.Equal(t, 10.0, last)
}

func TestEmptyFrameStillStartsCooldown(t *testing.T) {
	cam := DefaultCamera()
	res := cam.Trigger(3, model.Vec2{}, model.Right, nil)
	assert.False(t, res.Success)
	assert.False(t, cam.CanCapture(3.5))

	cam.Reset()
	assert.True(t, cam.CanCapture(3.5))
	_, ok := cam.LastCapture()
	assert.False(t, ok)
}
