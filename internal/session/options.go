package session

import (
	"justicemango/internal/capture"
	"justicemango/internal/npc"
)

// Options are the tunables a session is built with. Zero fields are
// replaced by DefaultOptions values in New, so a zero initial spawn delay,
// capture angle or capture cooldown cannot be expressed here. Range pairs
// (spawn x, level x) count as unset only when both bounds are zero.
type Options struct {
	Duration float64

	SpawnInitialDelay float64
	SpawnIntervalMin  float64
	SpawnIntervalMax  float64
	SpawnThreshold    int
	WaveMin           int
	WaveMax           int
	SpawnXMin         float64
	SpawnXMax         float64
	MaxNPCs           int
	Presets           map[string]npc.SpawnConfig

	PlayerSpeed float64
	LevelMinX   float64
	LevelMaxX   float64

	CaptureRange    float64
	CaptureAngle    float64
	CaptureCooldown float64

	PopupSeconds         float64
	NotificationSeconds  float64
	PostAnimationSeconds float64
}

func DefaultOptions() Options {
	return Options{
		Duration:             180,
		SpawnInitialDelay:    2,
		SpawnIntervalMin:     5,
		SpawnIntervalMax:     10,
		SpawnThreshold:       5,
		WaveMin:              1,
		WaveMax:              2,
		SpawnXMin:            -20,
		SpawnXMax:            20,
		MaxNPCs:              npc.DefaultMaxNPCs,
		Presets:              npc.DefaultPresets(),
		PlayerSpeed:          5,
		LevelMinX:            -25,
		LevelMaxX:            25,
		CaptureRange:         capture.DefaultRange,
		CaptureAngle:         capture.DefaultAngle,
		CaptureCooldown:      capture.DefaultCooldown,
		PopupSeconds:         3,
		NotificationSeconds:  2,
		PostAnimationSeconds: 2,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Duration <= 0 {
		o.Duration = d.Duration
	}
	if o.SpawnInitialDelay <= 0 {
		o.SpawnInitialDelay = d.SpawnInitialDelay
	}
	if o.SpawnIntervalMin <= 0 && o.SpawnIntervalMax <= 0 {
		o.SpawnIntervalMin, o.SpawnIntervalMax = d.SpawnIntervalMin, d.SpawnIntervalMax
	}
	if o.SpawnIntervalMin > o.SpawnIntervalMax {
		o.SpawnIntervalMin, o.SpawnIntervalMax = o.SpawnIntervalMax, o.SpawnIntervalMin
	}
	if o.SpawnThreshold <= 0 {
		o.SpawnThreshold = d.SpawnThreshold
	}
	if o.WaveMin <= 0 && o.WaveMax <= 0 {
		o.WaveMin, o.WaveMax = d.WaveMin, d.WaveMax
	}
	if o.WaveMin > o.WaveMax {
		o.WaveMin, o.WaveMax = o.WaveMax, o.WaveMin
	}
	if o.SpawnXMin == 0 && o.SpawnXMax == 0 {
		o.SpawnXMin, o.SpawnXMax = d.SpawnXMin, d.SpawnXMax
	}
	if o.MaxNPCs <= 0 {
		o.MaxNPCs = d.MaxNPCs
	}
	if o.Presets == nil {
		o.Presets = d.Presets
	}
	if o.PlayerSpeed <= 0 {
		o.PlayerSpeed = d.PlayerSpeed
	}
	if o.LevelMinX == 0 && o.LevelMaxX == 0 {
		o.LevelMinX, o.LevelMaxX = d.LevelMinX, d.LevelMaxX
	}
	if o.CaptureRange <= 0 {
		o.CaptureRange = d.CaptureRange
	}
	if o.CaptureAngle <= 0 {
		o.CaptureAngle = d.CaptureAngle
	}
	if o.CaptureCooldown <= 0 {
		o.CaptureCooldown = d.CaptureCooldown
	}
	if o.PopupSeconds <= 0 {
		o.PopupSeconds = d.PopupSeconds
	}
	if o.NotificationSeconds <= 0 {
		o.NotificationSeconds = d.NotificationSeconds
	}
	if o.PostAnimationSeconds <= 0 {
		o.PostAnimationSeconds = d.PostAnimationSeconds
	}
	return o
}
