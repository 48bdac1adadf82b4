package npc

import (
	"justicemango/internal/model"
	"justicemango/internal/random"
)

// Controller holds the identity and capturable state of an NPC.
type Controller struct {
	npcID         string
	violationType string
	violating     bool
}

func NewController(npcID, violationType string) *Controller {
	return &Controller{npcID: npcID, violationType: violationType}
}

func (c *Controller) NPCID() string         { return c.npcID }
func (c *Controller) ViolationType() string { return c.violationType }
func (c *Controller) IsViolating() bool     { return c.violating }

func (c *Controller) StartViolation() { c.violating = true }
func (c *Controller) StopViolation()  { c.violating = false }

// CanBeCaptured reports whether a photo of this NPC counts as a valid report.
func (c *Controller) CanBeCaptured() bool { return c.violating }

// NPC is a live entity. Its Behavior keeps a pointer to Position, so an NPC
// must be handled through *NPC and never copied.
type NPC struct {
	InstanceID string
	Position   model.Vec2
	SpawnedAt  float64
	Controller *Controller
	Behavior   *Behavior

	config SpawnConfig
}

// New builds an NPC from cfg at game time now. Auto-violating NPCs start
// their first violation immediately.
func New(instanceID string, cfg SpawnConfig, rng random.Source, now float64) *NPC {
	cfg = cfg.Normalize()
	n := &NPC{
		InstanceID: instanceID,
		Position:   cfg.Position,
		SpawnedAt:  now,
		config:     cfg,
	}
	n.Controller = NewController(cfg.NPCID, cfg.ViolationType)
	n.Behavior = NewBehavior(n.Controller, &n.Position, rng)

	b := n.Behavior
	b.SetMovementPattern(cfg.Movement)
	b.SetMoveSpeed(cfg.MoveSpeed)
	b.SetPatrolRange(cfg.PatrolRange)
	b.SetViolationDuration(cfg.ViolationDuration)
	b.SetViolationInterval(cfg.ViolationMinInterval, cfg.ViolationMaxInterval)
	b.EnableAutoViolation(cfg.AutoViolation, now)
	if cfg.AutoViolation {
		b.StartViolation()
	}
	return n
}

func (n *NPC) NPCID() string         { return n.Controller.NPCID() }
func (n *NPC) ViolationType() string { return n.Controller.ViolationType() }
func (n *NPC) IsViolating() bool     { return n.Controller.IsViolating() }

// Config returns a copy of the configuration the NPC was spawned with.
func (n *NPC) Config() SpawnConfig { return n.config.Clone() }

// Update advances movement and the violation cycle by dt at game time now.
func (n *NPC) Update(now, dt float64) { n.Behavior.Update(now, dt) }
