package reaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justicemango/internal/random"
)

func TestReactionForUnknownNPCUsesDefault(t *testing.T) {
	e := NewEngine(Builtin(), random.NewScript(0.0))
	assert.Equal(t, DefaultReaction(), e.ReactionFor("nobody"))

	e = NewEngine(nil, random.NewScript())
	assert.Equal(t, DefaultReaction(), e.ReactionFor("street_smoker"))
}

func TestReactionForSelection(t *testing.T) {
	table := Builtin()

	t.Run("roll below success probability", func(t *testing.T) {
		e := NewEngine(table, random.NewScript(0.5).WithInts(1))
		got := e.ReactionFor("street_smoker")
		assert.Equal(t, ReportSuccess, got.Category)
		assert.Equal(t, 20, got.LikeMin)
		assert.Equal(t, 60, got.LikeMax)
		assert.Equal(t, "Second-hand smoke on the main street again.", got.Message)
	})

	t.Run("roll above falls back to excessive justice", func(t *testing.T) {
		e := NewEngine(table, random.NewScript(0.9))
		got := e.ReactionFor("street_smoker")
		assert.Equal(t, ExcessiveJustice, got.Category)
		assert.Equal(t, 0.4, got.BacklashProbability)
	})

	t.Run("no excessive justice entry falls back to default", func(t *testing.T) {
		e := NewEngine(table, random.NewScript(0.9))
		assert.Equal(t, DefaultReaction(), e.ReactionFor("pigeon_feeder"))
	})
}

func TestReactionForEmptyMessageList(t *testing.T) {
	table := NewTable(Document{NPCs: []Definition{{
		ID: "quiet",
		Reactions: map[Category]Reaction{
			ReportSuccess: {Probability: 1, LikeRange: []int{1, 2}},
		},
	}}})
	e := NewEngine(table, random.NewScript(0.3))
	assert.Equal(t, "reported a violation", e.ReactionFor("quiet").Message)
}

func TestResolveValidWithBacklash(t *testing.T) {
	rng := random.NewScript(0.1, 0.05).WithInts(0, 42, 7)
	out := NewEngine(Builtin(), rng).Resolve("street_smoker", true)

	assert.True(t, out.Valid)
	assert.True(t, out.IsBacklash)
	assert.Equal(t, 42, out.LikesGained)
	assert.Equal(t, -7, out.FollowersGained)
	assert.Equal(t, 10.0, out.FlameGaugeChange)
	assert.Equal(t, "Caught someone smoking outside the smoking area.", out.Message)
	assert.Equal(t, 142, out.ScoreDelta())
}

func TestResolveValidWithoutBacklash(t *testing.T) {
	rng := random.NewScript(0.1, 0.5).WithInts(0, 30, 8)
	out := NewEngine(Builtin(), rng).Resolve("street_smoker", true)

	assert.False(t, out.IsBacklash)
	assert.Equal(t, 30, out.LikesGained)
	assert.Equal(t, 8, out.FollowersGained)
	assert.Equal(t, -5.0, out.FlameGaugeChange)
}

func TestResolveFalseReport(t *testing.T) {
	rng := random.NewScript().WithInts(12, 15)
	out := NewEngine(Builtin(), rng).Resolve("false_report", false)

	assert.False(t, out.Valid)
	assert.True(t, out.IsBacklash)
	assert.Equal(t, -12, out.LikesGained)
	assert.Equal(t, -15, out.FollowersGained)
	assert.Equal(t, 15.0, out.FlameGaugeChange)
	assert.Equal(t, "false report", out.Message)
	assert.Equal(t, 88, out.ScoreDelta())
}

func TestResolveRangesWithSeededSource(t *testing.T) {
	e := NewEngine(Builtin(), random.New(99))
	for i := 0; i < 500; i++ {
		out := e.Resolve("cyclist_student", true)
		require.GreaterOrEqual(t, out.LikesGained, out.Reaction.LikeMin)
		require.LessOrEqual(t, out.LikesGained, out.Reaction.LikeMax)
		if out.IsBacklash {
			require.Equal(t, 10.0, out.FlameGaugeChange)
			require.True(t, out.FollowersGained <= -5 && out.FollowersGained >= -15, "followers %d", out.FollowersGained)
		} else {
			require.Equal(t, -5.0, out.FlameGaugeChange)
			require.True(t, out.FollowersGained >= 5 && out.FollowersGained <= 10, "followers %d", out.FollowersGained)
		}

		f := e.Resolve("x", false)
		require.True(t, f.LikesGained <= -10 && f.LikesGained >= -30)
		require.True(t, f.FollowersGained <= -10 && f.FollowersGained >= -20)
	}
}
