// Package session is the game root. A Session owns the timer, the running
// totals and every gameplay collaborator, and is driven by Tick. It is not
// safe for concurrent use; runner serializes access.
package session

import (
	"errors"
	"log"
	"math"

	"justicemango/internal/capture"
	"justicemango/internal/model"
	"justicemango/internal/npc"
	"justicemango/internal/player"
	"justicemango/internal/random"
	"justicemango/internal/reaction"
	"justicemango/internal/schedule"
	"justicemango/internal/social"
	"justicemango/internal/telemetry"
)

const MaxFlame = 100.0

var (
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotRunning     = errors.New("game is not running")
	ErrPaused         = errors.New("game is paused")
	ErrEnded          = errors.New("game has ended")
)

type State string

const (
	StateNotStarted State = "not_started"
	StateRunning    State = "running"
	StatePaused     State = "paused"
	StateEnded      State = "ended"
)

type Stats struct {
	Score             int     `json:"score"`
	Followers         int     `json:"followers"`
	FlameGauge        float64 `json:"flame_gauge"`
	TimeRemaining     float64 `json:"time_remaining"`
	PhotosTaken       int     `json:"photos_taken"`
	SuccessfulReports int     `json:"successful_reports"`
	FalseReports      int     `json:"false_reports"`
	Backlashes        int     `json:"backlashes"`
}

// Deps are the collaborators shared with the rest of the process.
type Deps struct {
	Rand      random.Source
	Reactions *reaction.Table
	Telemetry telemetry.Repository
	Logger    *log.Logger
}

type Session struct {
	opts   Options
	rng    random.Source
	logger *log.Logger
	events telemetry.Repository

	spawner *npc.Spawner
	player  *player.Player
	camera  *capture.Camera
	engine  *reaction.Engine
	social  *social.Simulator

	world WorldClock
	// spawns runs on world time and only advances while the game is live.
	spawns *schedule.Scheduler
	// fx runs cosmetic timers on unscaled time, including while paused.
	fx *schedule.Scheduler

	started bool
	running bool
	paused  bool
	ended   bool

	timeRemaining float64
	score         int
	followers     int
	flame         float64
	stats         Stats
	moveAxis      float64

	hud        HUD
	popupHide  schedule.Handle
	noticeHide schedule.Handle
}

func New(opts Options, deps Deps) *Session {
	opts = opts.withDefaults()
	if deps.Rand == nil {
		deps.Rand = random.New(1)
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Telemetry == nil {
		deps.Telemetry = telemetry.Discard{}
	}

	s := &Session{
		opts:   opts,
		rng:    deps.Rand,
		logger: deps.Logger,
		events: deps.Telemetry,
		spawns: schedule.New(),
		fx:     schedule.New(),
	}
	s.spawner = npc.NewSpawner(deps.Rand, deps.Logger)
	s.spawner.SetMaxNPCs(opts.MaxNPCs)
	for name, cfg := range opts.Presets {
		s.spawner.AddPreset(name, cfg)
	}
	s.player = player.New(model.Vec2{})
	s.player.SetMoveSpeed(opts.PlayerSpeed)
	s.player.SetBounds(opts.LevelMinX, opts.LevelMaxX)
	s.camera = capture.NewCamera(opts.CaptureRange, opts.CaptureAngle, opts.CaptureCooldown)
	s.engine = reaction.NewEngine(deps.Reactions, deps.Rand)
	s.social = social.NewSimulator(deps.Rand, s.fx)

	s.world.reset()
	s.timeRemaining = opts.Duration
	s.refreshHUD()
	return s
}

// StartGame moves a fresh session to Running and starts the spawn cadence.
func (s *Session) StartGame() error {
	if s.ended {
		return ErrEnded
	}
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	s.running = true
	s.timeRemaining = s.opts.Duration
	s.world.SetScale(1)
	s.scheduleSpawn(s.opts.SpawnInitialDelay)
	s.refreshHUD()
	s.record(telemetry.EventGameStarted, telemetry.EventMetadata{"duration": s.opts.Duration})
	s.logger.Printf("[session] game started: duration=%.0fs presets=%d", s.opts.Duration, len(s.spawner.Presets()))
	return nil
}

// Tick advances the game by dt seconds of real time. Cosmetic timers
// always run; everything else only while the game is live.
func (s *Session) Tick(dt float64) {
	if dt <= 0 || math.IsNaN(dt) {
		return
	}
	s.fx.Advance(dt)
	if !s.running || s.paused || s.ended {
		return
	}

	step := s.world.Advance(dt)
	now := s.world.Now()
	s.player.Move(s.moveAxis, step)
	s.UpdateGameTimer(step)
	if !s.ended {
		s.spawns.Advance(step)
		s.spawner.Update(now, step)
	}
	s.refreshHUD()
	if !s.ended && s.CheckGameOver() {
		s.EndGame()
	}
}

// UpdateGameTimer counts the timer down by dt, never below zero. Reaching
// zero ends the game.
func (s *Session) UpdateGameTimer(dt float64) {
	if s.ended || dt <= 0 {
		return
	}
	s.timeRemaining -= dt
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.EndGame()
	}
}

// CheckGameOver reports whether an end condition holds.
func (s *Session) CheckGameOver() bool {
	return s.timeRemaining <= 0 || s.flame >= MaxFlame
}

// EndGame finishes the session. Repeated calls do nothing.
func (s *Session) EndGame() {
	if s.ended {
		return
	}
	s.running = false
	s.paused = false
	s.ended = true
	s.world.SetScale(0)
	s.refreshHUD()

	suspended := s.flame >= MaxFlame
	s.showGameOver(suspended)

	reason := "time_up"
	if suspended {
		reason = "suspended"
	}
	s.record(telemetry.EventGameOver, telemetry.EventMetadata{
		"reason":    reason,
		"score":     s.score,
		"followers": s.followers,
	})
	s.logger.Printf("[session] game over (%s): score=%d followers=%d photos=%d reports=%d false=%d",
		reason, s.score, s.followers, s.stats.PhotosTaken, s.stats.SuccessfulReports, s.stats.FalseReports)
}

func (s *Session) Pause() error {
	if !s.running {
		return ErrNotRunning
	}
	if s.paused {
		return nil
	}
	s.paused = true
	s.world.SetScale(0)
	s.record(telemetry.EventGamePaused, nil)
	return nil
}

func (s *Session) Resume() error {
	if !s.running {
		return ErrNotRunning
	}
	if !s.paused {
		return nil
	}
	s.paused = false
	s.world.SetScale(1)
	s.record(telemetry.EventGameResumed, nil)
	return nil
}

func (s *Session) TogglePause() error {
	if s.paused {
		return s.Resume()
	}
	return s.Pause()
}

// Restart tears the current game down and starts a new one.
func (s *Session) Restart() error {
	s.spawner.Clear()
	s.camera.Reset()
	s.spawns.Reset()
	s.social.StopAnimation()
	s.fx.Reset()
	s.world.reset()
	s.player.Reset(model.Vec2{})

	s.started, s.running, s.paused, s.ended = false, false, false, false
	s.score, s.followers, s.flame = 0, 0, 0
	s.stats = Stats{}
	s.moveAxis = 0
	s.hud = HUD{}
	s.popupHide, s.noticeHide = schedule.Handle{}, schedule.Handle{}
	s.timeRemaining = s.opts.Duration

	s.logger.Printf("[session] restart")
	return s.StartGame()
}

// IncreaseFlameGauge adds amount (which may be negative), clamped to
// [0,100]. A full gauge ends the game.
func (s *Session) IncreaseFlameGauge(amount float64) { s.setFlame(s.flame + amount) }
func (s *Session) DecreaseFlameGauge(amount float64) { s.setFlame(s.flame - amount) }
func (s *Session) SetFlameGauge(value float64)       { s.setFlame(value) }

func (s *Session) setFlame(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.flame = math.Max(0, math.Min(MaxFlame, v))
	s.refreshHUD()
	if s.flame >= MaxFlame {
		s.EndGame()
	}
}

// AddScore adds points; the score never drops below zero.
func (s *Session) AddScore(points int) {
	s.score = max(0, s.score+points)
	s.refreshHUD()
}

// AddFollowers applies a signed follower change, flooring at zero.
func (s *Session) AddFollowers(n int) {
	s.followers = max(0, s.followers+n)
	s.refreshHUD()
}

// SetMoveInput sets the horizontal input axis, clamped to [-1,1].
func (s *Session) SetMoveInput(axis float64) {
	if math.IsNaN(axis) {
		axis = 0
	}
	s.moveAxis = math.Max(-1, math.Min(1, axis))
}

func (s *Session) State() State {
	switch {
	case s.ended:
		return StateEnded
	case s.paused:
		return StatePaused
	case s.running:
		return StateRunning
	default:
		return StateNotStarted
	}
}

func (s *Session) Score() int             { return s.score }
func (s *Session) Followers() int         { return s.followers }
func (s *Session) FlameGauge() float64    { return s.flame }
func (s *Session) TimeRemaining() float64 { return s.timeRemaining }
func (s *Session) Duration() float64      { return s.opts.Duration }
func (s *Session) IsRunning() bool        { return s.running }
func (s *Session) IsPaused() bool         { return s.paused }
func (s *Session) IsEnded() bool          { return s.ended }
func (s *Session) WorldTime() float64     { return s.world.Now() }
func (s *Session) TimeScale() float64     { return s.world.Scale() }
func (s *Session) MoveInput() float64     { return s.moveAxis }

func (s *Session) Spawner() *npc.Spawner       { return s.spawner }
func (s *Session) Player() *player.Player      { return s.player }
func (s *Session) Camera() *capture.Camera     { return s.camera }
func (s *Session) Engine() *reaction.Engine    { return s.engine }
func (s *Session) Social() *social.Simulator   { return s.social }
func (s *Session) Options() Options            { return s.opts }
func (s *Session) FX() *schedule.Scheduler     { return s.fx }
func (s *Session) Spawns() *schedule.Scheduler { return s.spawns }

// Stats returns the running totals.
func (s *Session) Stats() Stats {
	st := s.stats
	st.Score = s.score
	st.Followers = s.followers
	st.FlameGauge = s.flame
	st.TimeRemaining = s.timeRemaining
	return st
}

func (s *Session) record(typ telemetry.EventType, md telemetry.EventMetadata) {
	if err := s.events.RecordEvent(typ, s.world.Now(), md); err != nil {
		s.logger.Printf("[session] telemetry %s: %v", typ, err)
	}
}
