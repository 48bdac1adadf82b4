package main

import (
	"fmt"
	"math"

	"justicemango/internal/npc"
	"justicemango/internal/session"
)

type Strategy string

const (
	// StrategyCareful walks to the nearest violator and only shoots when
	// one is in front of the camera.
	StrategyCareful Strategy = "careful"
	// StrategyReckless shoots whenever the camera is ready.
	StrategyReckless Strategy = "reckless"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyCareful, StrategyReckless:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// standoff is how close the bot walks before it stops and shoots.
const standoff = 2.0

type Bot struct {
	strategy Strategy
}

func NewBot(s Strategy) *Bot { return &Bot{strategy: s} }

// Play drives s with fixed dt steps until the game ends.
func (b *Bot) Play(s *session.Session, dt float64) {
	limit := int(math.Ceil(s.Duration()/dt)) + 10
	for i := 0; i < limit && !s.IsEnded(); i++ {
		b.Step(s)
		s.Tick(dt)
	}
}

// Step sets the move input for this frame and shoots when it should.
func (b *Bot) Step(s *session.Session) {
	pos := s.Player().Position()
	facing := float64(s.Player().FacingDirection())
	target := nearestViolator(pos.X, s.Spawner().Active())

	ready := s.Camera().CanCapture(s.WorldTime())
	if target == nil {
		s.SetMoveInput(0)
		if ready && b.strategy == StrategyReckless {
			_, _ = s.Capture()
		}
		return
	}

	d := target.Position.X - pos.X
	switch {
	case d > standoff:
		s.SetMoveInput(1)
	case d < -standoff:
		s.SetMoveInput(-1)
	case d != 0 && math.Signbit(d) != math.Signbit(facing):
		// turn in place
		s.SetMoveInput(math.Copysign(0.5, d))
	default:
		s.SetMoveInput(0)
	}

	inFront := d == 0 || math.Signbit(d) == math.Signbit(facing)
	inRange := math.Abs(d) <= s.Camera().Range
	if ready && (b.strategy == StrategyReckless || (inFront && inRange)) {
		_, _ = s.Capture()
	}
}

func nearestViolator(x float64, active []*npc.NPC) *npc.NPC {
	var best *npc.NPC
	bestDist := math.Inf(1)
	for _, n := range active {
		if !n.IsViolating() {
			continue
		}
		if d := math.Abs(n.Position.X - x); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}
