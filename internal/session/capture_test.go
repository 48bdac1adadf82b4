package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"justicemango/internal/capture"
	"justicemango/internal/npc"
	"justicemango/internal/random"
	"justicemango/internal/reaction"
	"justicemango/internal/telemetry"
)

func TestCaptureValidReport(t *testing.T) {
	h := newHarness(t, Options{}, nil)
	s := h.s
	require.NoError(t, s.StartGame())
	_, err := s.Spawner().Spawn(standingNPC("smoker", 2, true), s.WorldTime())
	require.NoError(t, err)

	res, err := s.Capture()
	require.NoError(t, err)
	require.Equal(t, ResolutionReport, res.Kind)
	require.NotNil(t, res.Outcome)
	assert.Equal(t, "smoker", res.Detection.PrimaryNPCID())

	// no table loaded, so the default reaction applies
	likes := res.Outcome.LikesGained
	assert.True(t, likes >= 5 && likes <= 15, "likes %d", likes)
	assert.Equal(t, 100+likes, s.Score())
	if res.Outcome.IsBacklash {
		assert.Equal(t, 0, s.Followers())
		assert.Equal(t, 10.0, s.FlameGauge())
	} else {
		assert.Equal(t, res.Outcome.FollowersGained, s.Followers())
		assert.Equal(t, 0.0, s.FlameGauge())
	}

	st := s.Stats()
	assert.Equal(t, 1, st.PhotosTaken)
	assert.Equal(t, 1, st.SuccessfulReports)
	assert.Equal(t, 0, st.FalseReports)

	hud := s.HUD()
	assert.True(t, hud.PopupVisible)
	assert.True(t, hud.Popup.Success)
	assert.Equal(t, "reported", hud.Popup.Message)
	assert.True(t, hud.PostAnimating)
	require.NotNil(t, hud.LastPost)
	assert.Len(t, hud.LastPost.Tags, 3)
	require.NotNil(t, hud.LastReactions)
	assert.GreaterOrEqual(t, len(hud.LastReactions.Comments), 3)
	assert.Equal(t, 1, h.count(telemetry.EventReportSuccess))
}

func TestCaptureFalseReport(t *testing.T) {
	h := newHarness(t, Options{}, nil)
	s := h.s
	require.NoError(t, s.StartGame())
	_, err := s.Spawner().Spawn(standingNPC("bystander", 1, false), s.WorldTime())
	require.NoError(t, err)

	res, err := s.Capture()
	require.NoError(t, err)
	require.Equal(t, ResolutionFalseReport, res.Kind)
	assert.True(t, res.Detection.IsFalseReport())

	likes := res.Outcome.LikesGained
	assert.True(t, likes <= -10 && likes >= -30, "likes %d", likes)
	assert.Equal(t, 100+likes, s.Score())
	assert.Equal(t, 0, s.Followers())
	assert.Equal(t, 15.0, s.FlameGauge())

	st := s.Stats()
	assert.Equal(t, 1, st.FalseReports)
	assert.Equal(t, 1, st.Backlashes)

	hud := s.HUD()
	assert.False(t, hud.Popup.Success)
	assert.True(t, hud.Popup.Backlash)
	assert.Equal(t, "False report! Flame risk rising", hud.Popup.Message)
	assert.False(t, hud.PostAnimating)
}

func TestCaptureBehindPlayerFails(t *testing.T) {
	h := newHarness(t, Options{}, nil)
	s := h.s
	require.NoError(t, s.StartGame())
	_, err := s.Spawner().Spawn(standingNPC("smoker", -2, true), s.WorldTime())
	require.NoError(t, err)

	res, err := s.Capture()
	require.NoError(t, err)
	assert.Equal(t, ResolutionFailed, res.Kind)

	hud := s.HUD()
	assert.True(t, hud.NotificationVisible)
	assert.Equal(t, "capture failed", hud.Notification)

	s.Tick(2)
	assert.False(t, s.HUD().NotificationVisible)

	// turning around makes the same NPC capturable
	s.SetMoveInput(-0.5)
	s.Tick(0.01)
	s.SetMoveInput(0)
	res, err = s.Capture()
	require.NoError(t, err)
	assert.Equal(t, ResolutionReport, res.Kind)
}

func TestForcedValidReportWithoutViolator(t *testing.T) {
	h := newHarness(t, Options{}, nil)
	s := h.s
	require.NoError(t, s.StartGame())

	idle := npc.New("idle-1", standingNPC("idle", 1, false), random.New(1), 0)
	res, err := s.ProcessCapture(capture.Result{Success: true, Targets: []*npc.NPC{idle}}, true)
	require.NoError(t, err)
	assert.Equal(t, ResolutionReport, res.Kind)
	assert.Equal(t, reaction.UnknownNPC, res.Outcome.NPCID)
	assert.Equal(t, 1, s.Stats().SuccessfulReports)
}

func TestReportUsesReactionTable(t *testing.T) {
	table := reaction.NewTable(reaction.Document{NPCs: []reaction.Definition{{
		ID: "smoker",
		Reactions: map[reaction.Category]reaction.Reaction{
			reaction.ReportSuccess: {
				Probability:         1,
				LikeRange:           []int{40, 40},
				BacklashProbability: 0,
				Messages:            []string{"caught one"},
			},
		},
	}}})
	events := telemetry.NewMemoryRepository()
	s := New(Options{}, Deps{Rand: random.New(3), Reactions: table, Telemetry: events})
	require.NoError(t, s.StartGame())

	target := npc.New("x", standingNPC("smoker", 1, true), random.New(1), 0)
	res, err := s.ProcessCapture(capture.Result{Success: true, Targets: []*npc.NPC{target}}, false)
	require.NoError(t, err)

	assert.Equal(t, 40, res.Outcome.LikesGained)
	assert.Equal(t, 140, res.ScoreDelta)
	assert.Equal(t, 140, s.Score())
	assert.Equal(t, "caught one", s.HUD().Popup.Message)
	assert.False(t, res.Outcome.IsBacklash)
	assert.True(t, res.Outcome.FollowersGained >= 5 && res.Outcome.FollowersGained <= 10)
}

func TestPopupHideRestartsOnNewPopup(t *testing.T) {
	h := newHarness(t, Options{}, nil)
	s := h.s
	require.NoError(t, s.StartGame())
	target := npc.New("x", standingNPC("smoker", 1, true), random.New(1), 0)
	result := capture.Result{Success: true, Targets: []*npc.NPC{target}}

	_, err := s.ProcessCapture(result, false)
	require.NoError(t, err)
	s.Tick(2)
	assert.True(t, s.HUD().PopupVisible)

	_, err = s.ProcessCapture(result, false)
	require.NoError(t, err)
	s.Tick(1.5)
	assert.True(t, s.HUD().PopupVisible)
	s.Tick(1.5)
	assert.False(t, s.HUD().PopupVisible)
}

func TestCosmeticTimersRunWhilePaused(t *testing.T) {
	h := newHarness(t, Options{}, nil)
	s := h.s
	require.NoError(t, s.StartGame())
	target := npc.New("x", standingNPC("smoker", 1, true), random.New(1), 0)

	_, err := s.ProcessCapture(capture.Result{Success: true, Targets: []*npc.NPC{target}}, false)
	require.NoError(t, err)
	require.True(t, s.HUD().PostAnimating)

	require.NoError(t, s.Pause())
	s.Tick(3)
	hud := s.HUD()
	assert.False(t, hud.PopupVisible)
	assert.False(t, hud.PostAnimating)
	assert.Equal(t, 0.0, s.WorldTime())
}

func TestFlameOverflowFromReportsEndsGame(t *testing.T) {
	h := newHarness(t, Options{}, nil)
	s := h.s
	require.NoError(t, s.StartGame())
	idle := npc.New("idle-1", standingNPC("idle", 1, false), random.New(1), 0)
	result := capture.Result{Success: true, Targets: []*npc.NPC{idle}}

	for i := 0; i < 6; i++ {
		_, err := s.ProcessCapture(result, false)
		require.NoError(t, err)
	}
	assert.Equal(t, 90.0, s.FlameGauge())
	assert.False(t, s.IsEnded())

	_, err := s.ProcessCapture(result, false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.FlameGauge())
	assert.True(t, s.IsEnded())
	assert.True(t, s.HUD().GameOver.Suspended)

	_, err = s.ProcessCapture(result, false)
	assert.ErrorIs(t, err, ErrEnded)
	assert.Equal(t, 7, s.Stats().PhotosTaken)
}

func TestSnapshot(t *testing.T) {
	h := newHarness(t, Options{}, nil)
	s := h.s
	require.NoError(t, s.StartGame())
	_, err := s.Spawner().Spawn(standingNPC("smoker", 2, true), 0)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 180.0, snap.Duration)
	require.Len(t, snap.NPCs, 1)
	assert.Equal(t, "smoker", snap.NPCs[0].NPCID)
	assert.True(t, snap.NPCs[0].Violating)
	assert.Equal(t, npc.Stationary, snap.NPCs[0].Movement)
	assert.Equal(t, 1, snap.Player.Facing)
}
