package session

import (
	"justicemango/internal/model"
	"justicemango/internal/npc"
)

type NPCView struct {
	InstanceID     string              `json:"instance_id"`
	NPCID          string              `json:"npc_id"`
	ViolationType  string              `json:"violation_type"`
	Position       model.Vec2          `json:"position"`
	Movement       npc.MovementPattern `json:"movement"`
	Violating      bool                `json:"violating"`
	ViolationTimer float64             `json:"violation_timer"`
}

type PlayerView struct {
	Position model.Vec2 `json:"position"`
	Facing   int        `json:"facing"`
	Moving   bool       `json:"moving"`
}

// Snapshot is a read-only copy of the whole game, safe to hand to another
// goroutine.
type Snapshot struct {
	State          State      `json:"state"`
	WorldTime      float64    `json:"world_time"`
	TimeScale      float64    `json:"time_scale"`
	Duration       float64    `json:"duration"`
	Stats          Stats      `json:"stats"`
	HUD            HUD        `json:"hud"`
	Player         PlayerView `json:"player"`
	CameraCooldown float64    `json:"camera_cooldown"`
	NPCs           []NPCView  `json:"npcs"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:     s.State(),
		WorldTime: s.world.Now(),
		TimeScale: s.world.Scale(),
		Duration:  s.opts.Duration,
		Stats:     s.Stats(),
		HUD:       s.HUD(),
		Player: PlayerView{
			Position: s.player.Position(),
			Facing:   s.player.FacingDirection(),
			Moving:   s.player.IsMoving(),
		},
		CameraCooldown: s.camera.CooldownRemaining(s.world.Now()),
		NPCs:           s.NPCViews(),
	}
}

// NPCViews describes every live NPC in spawn order.
func (s *Session) NPCViews() []NPCView {
	active := s.spawner.Active()
	out := make([]NPCView, 0, len(active))
	for _, n := range active {
		out = append(out, NPCView{
			InstanceID:     n.InstanceID,
			NPCID:          n.NPCID(),
			ViolationType:  n.ViolationType(),
			Position:       n.Position,
			Movement:       n.Behavior.Pattern(),
			Violating:      n.IsViolating(),
			ViolationTimer: n.Behavior.ViolationTimer(),
		})
	}
	return out
}
