// Package capture decides which NPCs a photo covers and enforces the
// camera cooldown.
package capture

import (
	"math"

	"justicemango/internal/model"
	"justicemango/internal/npc"
)

const (
	DefaultRange    = 5.0
	DefaultAngle    = 60.0
	DefaultCooldown = 1.0
)

// Result is the outcome of one shutter press.
type Result struct {
	Success   bool       `json:"success"`
	Targets   []*npc.NPC `json:"-"`
	Position  model.Vec2 `json:"position"`
	Timestamp float64    `json:"timestamp"`
}

// TargetIDs returns the instance ids of the captured NPCs.
func (r Result) TargetIDs() []string {
	out := make([]string, 0, len(r.Targets))
	for _, n := range r.Targets {
		out = append(out, n.InstanceID)
	}
	return out
}

// TargetsInRange returns the candidates inside the cone of half-angle
// angleDeg/2 around facing, no farther than maxRange from origin. An angle of
// 360 or more covers every direction, and an NPC standing exactly on origin
// is always inside.
func TargetsInRange(origin, facing model.Vec2, maxRange, angleDeg float64, candidates []*npc.NPC) []*npc.NPC {
	var out []*npc.NPC
	for _, n := range candidates {
		if n == nil {
			continue
		}
		if inCone(origin, facing, maxRange, angleDeg, n.Position) {
			out = append(out, n)
		}
	}
	return out
}

func inCone(origin, facing model.Vec2, maxRange, angleDeg float64, p model.Vec2) bool {
	if origin.Dist(p) > maxRange {
		return false
	}
	if angleDeg >= 360 {
		return true
	}
	dir := p.Sub(origin)
	if dir.Len() == 0 {
		return true
	}
	return facing.AngleTo(dir) <= angleDeg/2
}

// Camera is the player's capture device.
type Camera struct {
	Range    float64 `json:"range"`
	Angle    float64 `json:"angle"`
	Cooldown float64 `json:"cooldown"`

	last float64
}

func NewCamera(rng, angle, cooldown float64) *Camera {
	return &Camera{Range: rng, Angle: angle, Cooldown: cooldown, last: math.Inf(-1)}
}

func DefaultCamera() *Camera {
	return NewCamera(DefaultRange, DefaultAngle, DefaultCooldown)
}

// CanCapture reports whether the cooldown has elapsed at game time now.
func (c *Camera) CanCapture(now float64) bool {
	return now-c.last >= c.Cooldown
}

// CooldownRemaining returns the seconds left before the next capture, or 0.
func (c *Camera) CooldownRemaining(now float64) float64 {
	left := c.Cooldown - (now - c.last)
	if left < 0 || math.IsInf(left, 0) || math.IsNaN(left) {
		return 0
	}
	return left
}

// LastCapture returns the time of the last accepted attempt and whether
// there has been one.
func (c *Camera) LastCapture() (float64, bool) {
	if math.IsInf(c.last, -1) {
		return 0, false
	}
	return c.last, true
}

// Trigger attempts a capture. While cooling down it returns an unsuccessful
// result and leaves the cooldown untouched. Otherwise the attempt starts a
// new cooldown whether or not anything was in frame.
func (c *Camera) Trigger(now float64, origin, facing model.Vec2, candidates []*npc.NPC) Result {
	res := Result{Position: origin, Timestamp: now}
	if !c.CanCapture(now) {
		return res
	}
	c.last = now
	res.Targets = TargetsInRange(origin, facing, c.Range, c.Angle, candidates)
	res.Success = len(res.Targets) > 0
	return res
}

// Reset clears the cooldown.
func (c *Camera) Reset() {
	c.last = math.Inf(-1)
}
