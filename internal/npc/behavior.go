package npc

import (
	"justicemango/internal/model"
	"justicemango/internal/random"
)

// Behavior drives an NPC's movement and violation cycle. It runs three
// independent axes each tick: movement, auto-violation timing and the
// violation timer.
type Behavior struct {
	ctrl *Controller
	pos  *model.Vec2
	rng  random.Source

	pattern     MovementPattern
	moveSpeed   float64
	patrolRange float64
	patrolStart model.Vec2
	patrolDir   float64

	violationDuration float64
	minInterval       float64
	maxInterval       float64
	autoViolation     bool

	violationTimer    float64
	nextViolationTime float64
	inViolation       bool
	wasViolating      bool
	startedThisTick   bool
	violations        int

	randomMoveTimer float64
	randomDir       float64
}

// NewBehavior binds a behavior to the controller and position it mutates.
func NewBehavior(ctrl *Controller, pos *model.Vec2, rng random.Source) *Behavior {
	b := &Behavior{
		ctrl:              ctrl,
		pos:               pos,
		rng:               rng,
		pattern:           Stationary,
		moveSpeed:         1,
		patrolRange:       5,
		patrolDir:         1,
		violationDuration: 3,
		minInterval:       5,
		maxInterval:       10,
	}
	if pos != nil {
		b.patrolStart = *pos
	}
	return b
}

// SetMovementPattern switches pattern. Entering Patrol anchors the patrol
// at the current position.
func (b *Behavior) SetMovementPattern(p MovementPattern) {
	if p == "" {
		p = Stationary
	}
	b.pattern = p
	if p == Patrol {
		b.patrolStart = *b.pos
		b.patrolDir = 1
	}
}

func (b *Behavior) SetMoveSpeed(speed float64)     { b.moveSpeed = nonNegative(speed) }
func (b *Behavior) SetPatrolRange(r float64)       { b.patrolRange = nonNegative(r) }
func (b *Behavior) SetViolationDuration(d float64) { b.violationDuration = nonNegative(d) }
func (b *Behavior) SetViolationInterval(min, max float64) {
	b.minInterval, b.maxInterval = orderedInterval(min, max)
}

// EnableAutoViolation toggles automatic violations. Enabling schedules the
// next one relative to now.
func (b *Behavior) EnableAutoViolation(enable bool, now float64) {
	b.autoViolation = enable
	if enable {
		b.scheduleNextViolation(now)
	}
}

// StartViolation makes the NPC capturable for the configured duration.
func (b *Behavior) StartViolation() {
	b.ctrl.StartViolation()
	b.inViolation = true
	b.violationTimer = b.violationDuration
	b.violations++
	b.startedThisTick = true
}

// Update advances the behavior by dt; now is the game time after the step.
func (b *Behavior) Update(now, dt float64) {
	b.startedThisTick = false
	b.updateMovement(dt)
	if b.autoViolation && !b.inViolation && now >= b.nextViolationTime {
		b.StartViolation()
	}
	b.updateViolationTimer(now, dt)
}

func (b *Behavior) updateMovement(dt float64) {
	switch b.pattern {
	case Patrol:
		b.updatePatrol(dt)
	case Random:
		b.updateRandom(dt)
	}
}

func (b *Behavior) updatePatrol(dt float64) {
	b.pos.X += b.patrolDir * b.moveSpeed * dt

	offset := b.pos.X - b.patrolStart.X
	switch {
	case offset >= b.patrolRange:
		b.pos.X = b.patrolStart.X + b.patrolRange
		b.patrolDir = -1
	case offset <= -b.patrolRange:
		b.pos.X = b.patrolStart.X - b.patrolRange
		b.patrolDir = 1
	}
}

func (b *Behavior) updateRandom(dt float64) {
	b.randomMoveTimer -= dt
	if b.randomMoveTimer <= 0 {
		b.randomDir = 1
		if b.rng.Range(-1, 1) < 0 {
			b.randomDir = -1
		}
		b.randomMoveTimer = b.rng.Range(1, 3)
	}
	b.pos.X += b.randomDir * b.moveSpeed * dt
}

func (b *Behavior) updateViolationTimer(now, dt float64) {
	if b.inViolation {
		b.violationTimer -= dt
		if b.violationTimer <= 0 {
			b.violationTimer = 0
			b.ctrl.StopViolation()
			b.inViolation = false
			if b.autoViolation {
				b.scheduleNextViolation(now)
			}
		}
	}
	b.wasViolating = b.inViolation
}

func (b *Behavior) scheduleNextViolation(now float64) {
	b.nextViolationTime = now + b.rng.Range(b.minInterval, b.maxInterval)
}

func (b *Behavior) Pattern() MovementPattern   { return b.pattern }
func (b *Behavior) PatrolStart() model.Vec2    { return b.patrolStart }
func (b *Behavior) IsInViolation() bool        { return b.inViolation }
func (b *Behavior) ViolationTimer() float64    { return b.violationTimer }
func (b *Behavior) NextViolationTime() float64 { return b.nextViolationTime }
func (b *Behavior) AutoViolation() bool        { return b.autoViolation }

// WasViolatingLastFrame reports the violation state recorded at the end of
// the previous Update, after the end-of-violation check.
func (b *Behavior) WasViolatingLastFrame() bool { return b.wasViolating }

// ViolationStarted reports whether a violation began during the last Update.
func (b *Behavior) ViolationStarted() bool { return b.startedThisTick }

// ViolationCount returns how many violations have started so far.
func (b *Behavior) ViolationCount() int { return b.violations }
