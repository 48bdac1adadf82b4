package config

import "strings"

type Difficulty string

const (
	DifficultyDefault Difficulty = "default"
	DifficultyCasual  Difficulty = "casual"
	DifficultyHard    Difficulty = "hard"
)

// ParseDifficulty maps a name to a Difficulty. The empty string is the
// default difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyDefault, "normal":
		return DifficultyDefault, true
	case DifficultyCasual, "easy":
		return DifficultyCasual, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return DifficultyDefault, false
}

// Balance holds the difficulty-dependent gameplay tunables. Values here
// fill any field the config file and environment left unset.
type Balance struct {
	// Round
	DurationSeconds float64 `json:"duration_seconds"`

	// Spawning
	MaxNPCs           int     `json:"max_npcs"`
	SpawnIntervalMin  float64 `json:"spawn_interval_min"`
	SpawnIntervalMax  float64 `json:"spawn_interval_max"`
	SpawnThreshold    int     `json:"spawn_threshold"`
	WaveMin           int     `json:"wave_min"`
	WaveMax           int     `json:"wave_max"`
	InitialSpawnDelay float64 `json:"initial_spawn_delay"`
	SpawnSpreadX      float64 `json:"spawn_spread_x"`

	// Player
	LevelHalfWidth  float64 `json:"level_half_width"`
	PlayerMoveSpeed float64 `json:"player_move_speed"`

	// Camera
	CaptureRange    float64 `json:"capture_range"`
	CaptureAngle    float64 `json:"capture_angle"`
	CaptureCooldown float64 `json:"capture_cooldown"`

	// HUD
	PopupSeconds      float64 `json:"popup_seconds"`
	NoticeSeconds     float64 `json:"notice_seconds"`
	PostAnimationSecs float64 `json:"post_animation_seconds"`
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		DurationSeconds:   180,
		MaxNPCs:           10,
		SpawnIntervalMin:  5,
		SpawnIntervalMax:  10,
		SpawnThreshold:    5,
		WaveMin:           1,
		WaveMax:           2,
		InitialSpawnDelay: 2,
		SpawnSpreadX:      20,
		LevelHalfWidth:    25,
		PlayerMoveSpeed:   5,
		CaptureRange:      5,
		CaptureAngle:      60,
		CaptureCooldown:   1,
		PopupSeconds:      3,
		NoticeSeconds:     2,
		PostAnimationSecs: 2,
	}
}

// Casual returns easier balance: a longer round, fewer people on the street
// and a faster camera.
func Casual() Balance {
	cfg := Default()
	cfg.DurationSeconds = 240
	cfg.MaxNPCs = 8
	cfg.SpawnIntervalMin = 4
	cfg.SpawnIntervalMax = 8
	cfg.SpawnThreshold = 6
	cfg.CaptureRange = 6
	cfg.CaptureAngle = 75
	cfg.CaptureCooldown = 0.75
	return cfg
}

// Hard returns harder balance for experienced players
func Hard() Balance {
	cfg := Default()
	cfg.DurationSeconds = 120
	cfg.MaxNPCs = 12
	cfg.SpawnIntervalMin = 6
	cfg.SpawnIntervalMax = 12
	cfg.SpawnThreshold = 4
	cfg.WaveMax = 3
	cfg.CaptureRange = 4
	cfg.CaptureAngle = 45
	cfg.CaptureCooldown = 1.5
	return cfg
}

// BalanceFor returns the preset for d.
func BalanceFor(d Difficulty) Balance {
	switch d {
	case DifficultyCasual:
		return Casual()
	case DifficultyHard:
		return Hard()
	default:
		return Default()
	}
}
