package telemetry

import (
	"encoding/json"
)

type Stats struct {
	EventCounts     map[EventType]int `json:"event_counts"`
	Captures        int               `json:"captures"`
	FailedCaptures  int               `json:"failed_captures"`
	Reports         int               `json:"reports"`
	FalseReports    int               `json:"false_reports"`
	Backlashes      int               `json:"backlashes"`
	NPCsSpawned     int               `json:"npcs_spawned"`
	SpawnsByNPC     map[string]int    `json:"spawns_by_npc"`
	ReportsByNPC    map[string]int    `json:"reports_by_npc"`
	Accuracy        float64           `json:"accuracy"`
	BacklashRate    float64           `json:"backlash_rate"`
	LastGameOver    string            `json:"last_game_over,omitempty"`
	LastGameOverAt  float64           `json:"last_game_over_at,omitempty"`
	CapturesPerMin  float64           `json:"captures_per_minute"`
	ObservedSeconds float64           `json:"observed_seconds"`
}

// CalculateStats derives a play summary from events
func CalculateStats(events []Event) (Stats, error) {
	stats := Stats{
		EventCounts:  make(map[EventType]int),
		SpawnsByNPC:  make(map[string]int),
		ReportsByNPC: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++
		if event.GameTime > stats.ObservedSeconds {
			stats.ObservedSeconds = event.GameTime
		}

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventCaptureTaken:
			stats.Captures++
		case EventCaptureFailed:
			stats.FailedCaptures++
		case EventReportSuccess:
			stats.Reports++
			if id, ok := metadata["npc_id"].(string); ok {
				stats.ReportsByNPC[id]++
			}
		case EventFalseReport:
			stats.FalseReports++
		case EventBacklash:
			stats.Backlashes++
		case EventNPCSpawned:
			stats.NPCsSpawned++
			if id, ok := metadata["npc_id"].(string); ok {
				stats.SpawnsByNPC[id]++
			}
		case EventGameOver:
			if reason, ok := metadata["reason"].(string); ok {
				stats.LastGameOver = reason
			}
			stats.LastGameOverAt = event.GameTime
		}
	}

	if resolved := stats.Reports + stats.FalseReports; resolved > 0 {
		stats.Accuracy = float64(stats.Reports) / float64(resolved)
		stats.BacklashRate = float64(stats.Backlashes) / float64(resolved)
	}
	if stats.ObservedSeconds > 0 {
		stats.CapturesPerMin = float64(stats.Captures) / stats.ObservedSeconds * 60
	}

	return stats, nil
}
