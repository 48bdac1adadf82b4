package telemetry

import "time"

type EventType string

const (
	EventCaptureTaken  EventType = "capture_taken"
	EventCaptureFailed EventType = "capture_failed"
	EventReportSuccess EventType = "report_success"
	EventFalseReport   EventType = "false_report"
	EventBacklash      EventType = "backlash"
	EventNPCSpawned    EventType = "npc_spawned"
	EventGameStarted   EventType = "game_started"
	EventGamePaused    EventType = "game_paused"
	EventGameResumed   EventType = "game_resumed"
	EventGameOver      EventType = "game_over"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	GameTime  float64   `json:"game_time"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
