package player

import (
	"math"

	"justicemango/internal/model"
)

const (
	DefaultMoveSpeed = 5.0
	inputDeadzone    = 0.01
)

// Player is the photographer. It walks along X inside [minX,maxX] and
// faces the direction of its last non-zero input.
type Player struct {
	pos    model.Vec2
	speed  float64
	minX   float64
	maxX   float64
	facing int
	moving bool
}

func New(start model.Vec2) *Player {
	return &Player{
		pos:    start,
		speed:  DefaultMoveSpeed,
		minX:   math.Inf(-1),
		maxX:   math.Inf(1),
		facing: 1,
	}
}

func (p *Player) SetMoveSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	p.speed = speed
}

// SetBounds limits X to [min,max]. Inverted bounds are swapped.
func (p *Player) SetBounds(min, max float64) {
	if min > max {
		min, max = max, min
	}
	p.minX, p.maxX = min, max
	p.pos.X = clamp(p.pos.X, min, max)
}

// Move applies one frame of horizontal input in [-1,1]. Inputs inside the
// deadzone stop the player without changing facing.
func (p *Player) Move(axis, dt float64) {
	if math.Abs(axis) < inputDeadzone {
		p.moving = false
		return
	}
	p.moving = true
	if axis > 0 {
		p.facing = 1
	} else {
		p.facing = -1
	}
	p.pos.X = clamp(p.pos.X+axis*p.speed*dt, p.minX, p.maxX)
}

// Reset puts the player back at start facing right.
func (p *Player) Reset(start model.Vec2) {
	p.pos = model.Vec2{X: clamp(start.X, p.minX, p.maxX), Y: start.Y}
	p.facing = 1
	p.moving = false
}

func (p *Player) Position() model.Vec2 { return p.pos }
func (p *Player) MoveSpeed() float64   { return p.speed }
func (p *Player) FacingDirection() int { return p.facing }
func (p *Player) IsMoving() bool       { return p.moving }

func (p *Player) Bounds() (float64, float64) { return p.minX, p.maxX }

// Facing returns the unit facing vector used for capture cones.
func (p *Player) Facing() model.Vec2 { return model.Vec2{X: float64(p.facing)} }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
