package session

import (
	"errors"

	"justicemango/internal/model"
	"justicemango/internal/npc"
	"justicemango/internal/telemetry"
)

func (s *Session) scheduleSpawn(delay float64) {
	s.spawns.After(delay, s.spawnTick)
}

func (s *Session) spawnTick() {
	if !s.running || s.ended {
		return
	}
	if s.spawner.ActiveCount() < s.opts.SpawnThreshold {
		s.SpawnNPCWave(s.rng.IntRange(s.opts.WaveMin, s.opts.WaveMax))
	}
	s.scheduleSpawn(s.rng.Range(s.opts.SpawnIntervalMin, s.opts.SpawnIntervalMax))
}

// SpawnNPCWave spawns up to count NPCs at random x positions from random
// presets. It returns how many were actually created; capacity refusals
// are not errors.
func (s *Session) SpawnNPCWave(count int) int {
	spawned := 0
	now := s.world.Now()
	for i := 0; i < count; i++ {
		x := s.rng.Range(s.opts.SpawnXMin, s.opts.SpawnXMax)
		n, err := s.spawner.SpawnRandom(model.Vec2{X: x}, now)
		if err != nil {
			if !errors.Is(err, npc.ErrCapacityReached) {
				s.logger.Printf("[session] spawn: %v", err)
			}
			continue
		}
		spawned++
		s.record(telemetry.EventNPCSpawned, telemetry.EventMetadata{
			"npc_id":      n.NPCID(),
			"instance_id": n.InstanceID,
			"x":           n.Position.X,
		})
	}
	return spawned
}
