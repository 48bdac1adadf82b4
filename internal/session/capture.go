package session

import (
	"justicemango/internal/capture"
	"justicemango/internal/reaction"
	"justicemango/internal/social"
	"justicemango/internal/telemetry"
)

const falseReportKey = "false_report"

type ResolutionKind string

const (
	ResolutionCooldown    ResolutionKind = "cooldown"
	ResolutionFailed      ResolutionKind = "failed"
	ResolutionReport      ResolutionKind = "report"
	ResolutionFalseReport ResolutionKind = "false_report"
)

// Resolution describes what one capture did to the game.
type Resolution struct {
	Kind              ResolutionKind     `json:"kind"`
	TargetIDs         []string           `json:"target_ids,omitempty"`
	Detection         reaction.Detection `json:"detection"`
	Outcome           *reaction.Outcome  `json:"outcome,omitempty"`
	ScoreDelta        int                `json:"score_delta"`
	CooldownRemaining float64            `json:"cooldown_remaining,omitempty"`
}

// Capture fires the camera from the player's position and facing over the
// live NPCs. A press during cooldown does nothing and reports the time left.
func (s *Session) Capture() (Resolution, error) {
	switch {
	case s.ended:
		return Resolution{}, ErrEnded
	case !s.running:
		return Resolution{}, ErrNotRunning
	case s.paused:
		return Resolution{}, ErrPaused
	}

	now := s.world.Now()
	if !s.camera.CanCapture(now) {
		return Resolution{Kind: ResolutionCooldown, CooldownRemaining: s.camera.CooldownRemaining(now)}, nil
	}
	res := s.camera.Trigger(now, s.player.Position(), s.player.Facing(), s.spawner.Active())
	return s.ProcessCapture(res, false)
}

// ProcessCapture scores a capture result. With forceValid a capture that
// hit no violator is still treated as a valid report.
func (s *Session) ProcessCapture(res capture.Result, forceValid bool) (Resolution, error) {
	if s.ended {
		return Resolution{}, ErrEnded
	}

	s.stats.PhotosTaken++
	s.record(telemetry.EventCaptureTaken, telemetry.EventMetadata{
		"targets": len(res.Targets),
		"x":       res.Position.X,
	})

	out := Resolution{TargetIDs: res.TargetIDs()}
	if !res.Success {
		out.Kind = ResolutionFailed
		s.notify(msgCaptureFailed)
		s.record(telemetry.EventCaptureFailed, nil)
		return out, nil
	}

	out.Detection = reaction.Detect(res)
	if out.Detection.IsValidReport || forceValid {
		s.successfulReport(&out)
	} else {
		s.falseReport(&out)
	}
	return out, nil
}

func (s *Session) successfulReport(out *Resolution) {
	s.stats.SuccessfulReports++

	npcID := out.Detection.PrimaryNPCID()
	outcome := s.engine.Resolve(npcID, true)
	s.applyOutcome(outcome)
	out.Kind = ResolutionReport
	out.Outcome = &outcome
	out.ScoreDelta = outcome.ScoreDelta()

	s.showPopup(Popup{
		Success:         true,
		Message:         outcome.Message,
		LikesGained:     outcome.LikesGained,
		FollowersGained: outcome.FollowersGained,
		Backlash:        outcome.IsBacklash,
	})
	s.postReport(outcome)

	s.record(telemetry.EventReportSuccess, telemetry.EventMetadata{
		"npc_id":    npcID,
		"likes":     outcome.LikesGained,
		"followers": outcome.FollowersGained,
		"backlash":  outcome.IsBacklash,
	})
	if outcome.IsBacklash {
		s.record(telemetry.EventBacklash, telemetry.EventMetadata{"npc_id": npcID})
	}
}

func (s *Session) falseReport(out *Resolution) {
	s.stats.FalseReports++

	outcome := s.engine.Resolve(falseReportKey, false)
	s.applyOutcome(outcome)
	out.Kind = ResolutionFalseReport
	out.Outcome = &outcome
	out.ScoreDelta = outcome.ScoreDelta()

	s.showPopup(Popup{
		Success:         false,
		Message:         msgFalseReport,
		LikesGained:     outcome.LikesGained,
		FollowersGained: outcome.FollowersGained,
		Backlash:        true,
	})

	s.record(telemetry.EventFalseReport, telemetry.EventMetadata{
		"likes":     outcome.LikesGained,
		"followers": outcome.FollowersGained,
	})
	s.record(telemetry.EventBacklash, telemetry.EventMetadata{"npc_id": falseReportKey})
}

func (s *Session) applyOutcome(o reaction.Outcome) {
	if o.IsBacklash {
		s.stats.Backlashes++
	}
	s.AddScore(o.ScoreDelta())
	s.AddFollowers(o.FollowersGained)
	s.IncreaseFlameGauge(o.FlameGaugeChange)
}

// postReport publishes the cosmetic feed post for a successful report.
func (s *Session) postReport(o reaction.Outcome) {
	cfg := social.PostConfig{
		Message: o.Message,
		Tags:    s.social.TrendingHashtags(),
	}
	post := s.social.CreatePost(cfg, s.world.Now())
	backlash := o.Reaction.BacklashProbability
	reactions := s.social.SimulateReactions(post, 1-backlash, backlash)
	s.hud.LastPost = &post
	s.hud.LastReactions = &reactions
	s.social.PlayPostAnimation(cfg, s.opts.PostAnimationSeconds)
}
