package npc

import (
	"errors"
	"fmt"
	"strings"

	"justicemango/internal/model"
)

type MovementPattern string

const (
	Stationary MovementPattern = "stationary"
	Patrol     MovementPattern = "patrol"
	Random     MovementPattern = "random"
)

// ParseMovementPattern accepts the config spelling of a pattern.
// An empty string maps to Stationary.
func ParseMovementPattern(s string) (MovementPattern, error) {
	switch MovementPattern(strings.ToLower(strings.TrimSpace(s))) {
	case "", Stationary:
		return Stationary, nil
	case Patrol:
		return Patrol, nil
	case Random:
		return Random, nil
	default:
		return "", fmt.Errorf("unknown movement pattern: %q", s)
	}
}

// SpawnConfig is the template an NPC is built from. It holds no reference
// types, so a plain value copy never aliases the original.
type SpawnConfig struct {
	NPCID                string          `yaml:"npc_id" json:"npc_id"`
	ViolationType        string          `yaml:"violation_type" json:"violation_type"`
	Position             model.Vec2      `yaml:"position" json:"position"`
	Movement             MovementPattern `yaml:"movement" json:"movement"`
	MoveSpeed            float64         `yaml:"move_speed" json:"move_speed"`
	PatrolRange          float64         `yaml:"patrol_range" json:"patrol_range"`
	ViolationDuration    float64         `yaml:"violation_duration" json:"violation_duration"`
	ViolationMinInterval float64         `yaml:"violation_min_interval" json:"violation_min_interval"`
	ViolationMaxInterval float64         `yaml:"violation_max_interval" json:"violation_max_interval"`
	AutoViolation        bool            `yaml:"auto_violation" json:"auto_violation"`
}

// DefaultSpawnConfig returns the baseline every preset starts from.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Movement:             Stationary,
		MoveSpeed:            1,
		PatrolRange:          5,
		ViolationDuration:    3,
		ViolationMinInterval: 5,
		ViolationMaxInterval: 10,
		AutoViolation:        true,
	}
}

// Clone returns an independent copy of c.
func (c SpawnConfig) Clone() SpawnConfig {
	out := c
	return out
}

// Normalize clamps negative values to zero and swaps an inverted interval.
func (c SpawnConfig) Normalize() SpawnConfig {
	out := c.Clone()
	if out.Movement == "" {
		out.Movement = Stationary
	}
	out.MoveSpeed = nonNegative(out.MoveSpeed)
	out.PatrolRange = nonNegative(out.PatrolRange)
	out.ViolationDuration = nonNegative(out.ViolationDuration)
	out.ViolationMinInterval, out.ViolationMaxInterval = orderedInterval(out.ViolationMinInterval, out.ViolationMaxInterval)
	return out
}

// Validate reports every field Normalize would have to change.
func (c SpawnConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.NPCID) == "" {
		errs = append(errs, errors.New("npc_id is required"))
	}
	if _, err := ParseMovementPattern(string(c.Movement)); err != nil {
		errs = append(errs, err)
	}
	if c.MoveSpeed < 0 {
		errs = append(errs, fmt.Errorf("move_speed must be >= 0, got %v", c.MoveSpeed))
	}
	if c.PatrolRange < 0 {
		errs = append(errs, fmt.Errorf("patrol_range must be >= 0, got %v", c.PatrolRange))
	}
	if c.ViolationDuration < 0 {
		errs = append(errs, fmt.Errorf("violation_duration must be >= 0, got %v", c.ViolationDuration))
	}
	if c.ViolationMinInterval < 0 || c.ViolationMaxInterval < 0 {
		errs = append(errs, fmt.Errorf("violation interval bounds must be >= 0, got [%v,%v]", c.ViolationMinInterval, c.ViolationMaxInterval))
	}
	if c.ViolationMinInterval > c.ViolationMaxInterval {
		errs = append(errs, fmt.Errorf("violation_min_interval %v exceeds violation_max_interval %v", c.ViolationMinInterval, c.ViolationMaxInterval))
	}
	return errors.Join(errs...)
}

// DefaultPresets returns the built-in street cast keyed by preset name.
func DefaultPresets() map[string]SpawnConfig {
	smoker := DefaultSpawnConfig()
	smoker.NPCID = "street_smoker"
	smoker.ViolationType = "smoking_outside_area"
	smoker.ViolationDuration = 5
	smoker.ViolationMinInterval = 10
	smoker.ViolationMaxInterval = 20

	stroller := DefaultSpawnConfig()
	stroller.NPCID = "stroller_mother"
	stroller.ViolationType = "blocking_sidewalk"
	stroller.Movement = Patrol
	stroller.MoveSpeed = 0.5
	stroller.PatrolRange = 8
	stroller.AutoViolation = false

	pigeons := DefaultSpawnConfig()
	pigeons.NPCID = "pigeon_feeder"
	pigeons.ViolationType = "feeding_pigeons"
	pigeons.ViolationDuration = 10
	pigeons.ViolationMinInterval = 15
	pigeons.ViolationMaxInterval = 30

	driver := DefaultSpawnConfig()
	driver.NPCID = "delivery_driver"
	driver.ViolationType = "temporary_parking"
	driver.ViolationDuration = 15

	cyclist := DefaultSpawnConfig()
	cyclist.NPCID = "cyclist_student"
	cyclist.ViolationType = "wrong_way_cycling"
	cyclist.Movement = Patrol
	cyclist.MoveSpeed = 3
	cyclist.PatrolRange = 15
	cyclist.AutoViolation = false

	return map[string]SpawnConfig{
		smoker.NPCID:   smoker,
		stroller.NPCID: stroller,
		pigeons.NPCID:  pigeons,
		driver.NPCID:   driver,
		cyclist.NPCID:  cyclist,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func orderedInterval(min, max float64) (float64, float64) {
	min, max = nonNegative(min), nonNegative(max)
	if min > max {
		return max, min
	}
	return min, max
}
