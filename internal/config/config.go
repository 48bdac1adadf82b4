// Package config loads the game configuration: a YAML file, overridden by
// JMG_* environment variables, with any remaining gaps filled from the
// difficulty's Balance.
package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"justicemango/internal/npc"
	"justicemango/internal/reaction"
	"justicemango/internal/session"
)

const (
	DefaultAddr         = ":8080"
	DefaultTickInterval = 50 * time.Millisecond
	MinTickInterval     = time.Millisecond
)

type Config struct {
	Version       string                     `yaml:"version" json:"version"`
	Difficulty    string                     `yaml:"difficulty" json:"difficulty" env:"DIFFICULTY"`
	Seed          int64                      `yaml:"seed" json:"seed" env:"SEED"`
	ReactionsPath string                     `yaml:"reactions_path" json:"reactions_path" env:"REACTIONS_PATH"`
	Server        ServerConfig               `yaml:"server" json:"server" envPrefix:"SERVER_"`
	Session       SessionConfig              `yaml:"session" json:"session" envPrefix:"SESSION_"`
	Player        PlayerConfig               `yaml:"player" json:"player" envPrefix:"PLAYER_"`
	Capture       CaptureConfig              `yaml:"capture" json:"capture" envPrefix:"CAPTURE_"`
	Spawner       SpawnerConfig              `yaml:"spawner" json:"spawner" envPrefix:"SPAWNER_"`
	HUD           HUDConfig                  `yaml:"hud" json:"hud" envPrefix:"HUD_"`
	Presets       map[string]npc.SpawnConfig `yaml:"presets" json:"presets"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr" json:"addr" env:"ADDR"`
	TickInterval time.Duration `yaml:"tick_interval" json:"tick_interval" env:"TICK_INTERVAL"`
}

// SessionConfig covers the round itself. A zero duration defers to the
// reaction data's time limit, then to the difficulty.
type SessionConfig struct {
	DurationSeconds float64 `yaml:"duration_seconds" json:"duration_seconds" env:"DURATION_SECONDS"`
}

type PlayerConfig struct {
	MoveSpeed float64 `yaml:"move_speed" json:"move_speed" env:"MOVE_SPEED"`
	LevelMinX float64 `yaml:"level_min_x" json:"level_min_x" env:"LEVEL_MIN_X"`
	LevelMaxX float64 `yaml:"level_max_x" json:"level_max_x" env:"LEVEL_MAX_X"`
}

type CaptureConfig struct {
	Range           float64 `yaml:"range" json:"range" env:"RANGE"`
	AngleDegrees    float64 `yaml:"angle_degrees" json:"angle_degrees" env:"ANGLE_DEGREES"`
	CooldownSeconds float64 `yaml:"cooldown_seconds" json:"cooldown_seconds" env:"COOLDOWN_SECONDS"`
}

type SpawnerConfig struct {
	MaxNPCs             int     `yaml:"max_npcs" json:"max_npcs" env:"MAX_NPCS"`
	InitialDelaySeconds float64 `yaml:"initial_delay_seconds" json:"initial_delay_seconds" env:"INITIAL_DELAY_SECONDS"`
	IntervalMinSeconds  float64 `yaml:"interval_min_seconds" json:"interval_min_seconds" env:"INTERVAL_MIN_SECONDS"`
	IntervalMaxSeconds  float64 `yaml:"interval_max_seconds" json:"interval_max_seconds" env:"INTERVAL_MAX_SECONDS"`
	ActiveThreshold     int     `yaml:"active_threshold" json:"active_threshold" env:"ACTIVE_THRESHOLD"`
	WaveMin             int     `yaml:"wave_min" json:"wave_min" env:"WAVE_MIN"`
	WaveMax             int     `yaml:"wave_max" json:"wave_max" env:"WAVE_MAX"`
	XMin                float64 `yaml:"x_min" json:"x_min" env:"X_MIN"`
	XMax                float64 `yaml:"x_max" json:"x_max" env:"X_MAX"`
}

type HUDConfig struct {
	PopupSeconds         float64 `yaml:"popup_seconds" json:"popup_seconds" env:"POPUP_SECONDS"`
	NotificationSeconds  float64 `yaml:"notification_seconds" json:"notification_seconds" env:"NOTIFICATION_SECONDS"`
	PostAnimationSeconds float64 `yaml:"post_animation_seconds" json:"post_animation_seconds" env:"POST_ANIMATION_SECONDS"`
}

// Balance returns the preset for the configured difficulty.
func (c *Config) Balance() Balance {
	d, _ := ParseDifficulty(c.Difficulty)
	return BalanceFor(d)
}

// ApplyDefaults fills zero fields from the difficulty's Balance. Negative
// or inverted values are left for Sanitize to report.
func (c *Config) ApplyDefaults() {
	b := c.Balance()
	if c.Difficulty == "" {
		c.Difficulty = string(DifficultyDefault)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.TickInterval == 0 {
		c.Server.TickInterval = DefaultTickInterval
	}

	if c.Player.MoveSpeed == 0 {
		c.Player.MoveSpeed = b.PlayerMoveSpeed
	}
	if c.Player.LevelMinX == 0 && c.Player.LevelMaxX == 0 {
		c.Player.LevelMinX, c.Player.LevelMaxX = -b.LevelHalfWidth, b.LevelHalfWidth
	}

	if c.Capture.Range == 0 {
		c.Capture.Range = b.CaptureRange
	}
	if c.Capture.AngleDegrees == 0 {
		c.Capture.AngleDegrees = b.CaptureAngle
	}
	if c.Capture.CooldownSeconds == 0 {
		c.Capture.CooldownSeconds = b.CaptureCooldown
	}

	sp := &c.Spawner
	if sp.MaxNPCs == 0 {
		sp.MaxNPCs = b.MaxNPCs
	}
	if sp.InitialDelaySeconds == 0 {
		sp.InitialDelaySeconds = b.InitialSpawnDelay
	}
	if sp.IntervalMinSeconds == 0 && sp.IntervalMaxSeconds == 0 {
		sp.IntervalMinSeconds, sp.IntervalMaxSeconds = b.SpawnIntervalMin, b.SpawnIntervalMax
	}
	if sp.ActiveThreshold == 0 {
		sp.ActiveThreshold = b.SpawnThreshold
	}
	if sp.WaveMin == 0 && sp.WaveMax == 0 {
		sp.WaveMin, sp.WaveMax = b.WaveMin, b.WaveMax
	}
	if sp.XMin == 0 && sp.XMax == 0 {
		sp.XMin, sp.XMax = -b.SpawnSpreadX, b.SpawnSpreadX
	}

	if c.HUD.PopupSeconds == 0 {
		c.HUD.PopupSeconds = b.PopupSeconds
	}
	if c.HUD.NotificationSeconds == 0 {
		c.HUD.NotificationSeconds = b.NoticeSeconds
	}
	if c.HUD.PostAnimationSeconds == 0 {
		c.HUD.PostAnimationSeconds = b.PostAnimationSecs
	}

	if len(c.Presets) == 0 {
		c.Presets = npc.DefaultPresets()
	}
}

// Sanitize repairs values ApplyDefaults cannot: negatives, inverted ranges,
// unknown difficulties and invalid presets. It returns one line per change.
func (c *Config) Sanitize() []string {
	var notes []string
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}

	d, ok := ParseDifficulty(c.Difficulty)
	if !ok {
		note("unknown difficulty %q, using %s", c.Difficulty, d)
	}
	c.Difficulty = string(d)
	b := c.Balance()

	if c.Server.TickInterval < MinTickInterval {
		note("server.tick_interval %v below %v, using %v", c.Server.TickInterval, MinTickInterval, DefaultTickInterval)
		c.Server.TickInterval = DefaultTickInterval
	}
	if c.Session.DurationSeconds < 0 {
		note("session.duration_seconds %v is negative, ignoring", c.Session.DurationSeconds)
		c.Session.DurationSeconds = 0
	}

	if c.Player.MoveSpeed < 0 {
		note("player.move_speed %v is negative, using %v", c.Player.MoveSpeed, b.PlayerMoveSpeed)
		c.Player.MoveSpeed = b.PlayerMoveSpeed
	}
	if c.Player.LevelMinX > c.Player.LevelMaxX {
		note("player level bounds inverted, swapping")
		c.Player.LevelMinX, c.Player.LevelMaxX = c.Player.LevelMaxX, c.Player.LevelMinX
	}

	if c.Capture.Range < 0 {
		note("capture.range %v is negative, using %v", c.Capture.Range, b.CaptureRange)
		c.Capture.Range = b.CaptureRange
	}
	if c.Capture.AngleDegrees < 0 {
		note("capture.angle_degrees %v is negative, using %v", c.Capture.AngleDegrees, b.CaptureAngle)
		c.Capture.AngleDegrees = b.CaptureAngle
	}
	if c.Capture.AngleDegrees > 360 {
		note("capture.angle_degrees %v above 360, clamping", c.Capture.AngleDegrees)
		c.Capture.AngleDegrees = 360
	}
	if c.Capture.CooldownSeconds < 0 {
		note("capture.cooldown_seconds %v is negative, using %v", c.Capture.CooldownSeconds, b.CaptureCooldown)
		c.Capture.CooldownSeconds = b.CaptureCooldown
	}

	notes = append(notes, c.sanitizeSpawner(b)...)

	if c.HUD.PopupSeconds < 0 {
		note("hud.popup_seconds is negative, using %v", b.PopupSeconds)
		c.HUD.PopupSeconds = b.PopupSeconds
	}
	if c.HUD.NotificationSeconds < 0 {
		note("hud.notification_seconds is negative, using %v", b.NoticeSeconds)
		c.HUD.NotificationSeconds = b.NoticeSeconds
	}
	if c.HUD.PostAnimationSeconds < 0 {
		note("hud.post_animation_seconds is negative, using %v", b.PostAnimationSecs)
		c.HUD.PostAnimationSeconds = b.PostAnimationSecs
	}

	notes = append(notes, c.sanitizePresets()...)
	return notes
}

func (c *Config) sanitizeSpawner(b Balance) []string {
	var notes []string
	sp := &c.Spawner
	if sp.MaxNPCs < 1 {
		notes = append(notes, fmt.Sprintf("spawner.max_npcs %d below 1, using %d", sp.MaxNPCs, b.MaxNPCs))
		sp.MaxNPCs = b.MaxNPCs
	}
	if sp.InitialDelaySeconds < 0 {
		notes = append(notes, fmt.Sprintf("spawner.initial_delay_seconds %v is negative, using %v",
			sp.InitialDelaySeconds, b.InitialSpawnDelay))
		sp.InitialDelaySeconds = b.InitialSpawnDelay
	}
	if sp.IntervalMinSeconds < 0 || sp.IntervalMaxSeconds < 0 {
		notes = append(notes, fmt.Sprintf("spawner interval [%v,%v] has a negative bound, using [%v,%v]",
			sp.IntervalMinSeconds, sp.IntervalMaxSeconds, b.SpawnIntervalMin, b.SpawnIntervalMax))
		sp.IntervalMinSeconds, sp.IntervalMaxSeconds = b.SpawnIntervalMin, b.SpawnIntervalMax
	}
	if sp.IntervalMinSeconds > sp.IntervalMaxSeconds {
		notes = append(notes, "spawner interval inverted, swapping")
		sp.IntervalMinSeconds, sp.IntervalMaxSeconds = sp.IntervalMaxSeconds, sp.IntervalMinSeconds
	}
	if sp.ActiveThreshold < 1 {
		notes = append(notes, fmt.Sprintf("spawner.active_threshold %d below 1, using %d", sp.ActiveThreshold, b.SpawnThreshold))
		sp.ActiveThreshold = b.SpawnThreshold
	}
	if sp.WaveMin < 1 {
		notes = append(notes, fmt.Sprintf("spawner.wave_min %d below 1, using 1", sp.WaveMin))
		sp.WaveMin = 1
	}
	if sp.WaveMin > sp.WaveMax {
		notes = append(notes, "spawner wave size inverted, swapping")
		sp.WaveMin, sp.WaveMax = sp.WaveMax, sp.WaveMin
		if sp.WaveMin < 1 {
			sp.WaveMin = 1
		}
	}
	if sp.XMin > sp.XMax {
		notes = append(notes, "spawner x range inverted, swapping")
		sp.XMin, sp.XMax = sp.XMax, sp.XMin
	}
	return notes
}

func (c *Config) sanitizePresets() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	var notes []string
	for _, name := range names {
		p := c.Presets[name]
		if err := p.Validate(); err == nil {
			continue
		}
		fixed := p.Normalize()
		if err := fixed.Validate(); err != nil {
			notes = append(notes, fmt.Sprintf("preset %q dropped: %v", name, err))
			delete(c.Presets, name)
			continue
		}
		notes = append(notes, fmt.Sprintf("preset %q normalized", name))
		c.Presets[name] = fixed
	}
	if len(c.Presets) == 0 {
		notes = append(notes, "no usable presets, using built-in presets")
		c.Presets = npc.DefaultPresets()
	}
	return notes
}

// SessionOptions converts the config into session options. global supplies
// the reaction data's time limit for configs without a duration.
func (c *Config) SessionOptions(global reaction.GlobalSettings) session.Options {
	duration := c.Session.DurationSeconds
	if duration <= 0 && global.TimeLimitSeconds > 0 {
		duration = float64(global.TimeLimitSeconds)
	}
	if duration <= 0 {
		duration = c.Balance().DurationSeconds
	}

	presets := make(map[string]npc.SpawnConfig, len(c.Presets))
	for name, p := range c.Presets {
		presets[name] = p.Clone()
	}

	return session.Options{
		Duration:             duration,
		SpawnInitialDelay:    c.Spawner.InitialDelaySeconds,
		SpawnIntervalMin:     c.Spawner.IntervalMinSeconds,
		SpawnIntervalMax:     c.Spawner.IntervalMaxSeconds,
		SpawnThreshold:       c.Spawner.ActiveThreshold,
		WaveMin:              c.Spawner.WaveMin,
		WaveMax:              c.Spawner.WaveMax,
		SpawnXMin:            c.Spawner.XMin,
		SpawnXMax:            c.Spawner.XMax,
		MaxNPCs:              c.Spawner.MaxNPCs,
		Presets:              presets,
		PlayerSpeed:          c.Player.MoveSpeed,
		LevelMinX:            c.Player.LevelMinX,
		LevelMaxX:            c.Player.LevelMaxX,
		CaptureRange:         c.Capture.Range,
		CaptureAngle:         c.Capture.AngleDegrees,
		CaptureCooldown:      c.Capture.CooldownSeconds,
		PopupSeconds:         c.HUD.PopupSeconds,
		NotificationSeconds:  c.HUD.NotificationSeconds,
		PostAnimationSeconds: c.HUD.PostAnimationSeconds,
	}
}

// Parse decodes a YAML config without applying env or defaults.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

// Load reads the YAML file at path (an empty path starts from an empty
// config), applies JMG_* environment overrides and fills defaults. Callers
// run Sanitize afterwards and log what it changed.
func Load(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if c, err = Parse(b); err != nil {
			return nil, err
		}
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return c, nil
}
