package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryFilters(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventNPCSpawned, 1, EventMetadata{"npc_id": "street_smoker"}))
	require.NoError(t, repo.RecordEvent(EventCaptureTaken, 2, nil))
	require.NoError(t, repo.RecordEvent(EventReportSuccess, 2, EventMetadata{"npc_id": "street_smoker"}))

	all, err := repo.GetEvents(0, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 3, all[2].ID)

	late, err := repo.GetEvents(2, []EventType{EventReportSuccess})
	require.NoError(t, err)
	require.Len(t, late, 1)
	assert.JSONEq(t, `{"npc_id":"street_smoker"}`, late[0].Metadata)

	require.NoError(t, repo.Clear())
	assert.Equal(t, 0, repo.Len())
	require.NoError(t, repo.RecordEvent(EventGameOver, 5, nil))
	events, _ := repo.GetEvents(0, nil)
	assert.Equal(t, 1, events[0].ID)
}

func TestCalculateStats(t *testing.T) {
	repo := NewMemoryRepository()
	record := func(typ EventType, at float64, md EventMetadata) {
		require.NoError(t, repo.RecordEvent(typ, at, md))
	}
	record(EventNPCSpawned, 2, EventMetadata{"npc_id": "pigeon_feeder"})
	record(EventNPCSpawned, 2, EventMetadata{"npc_id": "pigeon_feeder"})
	record(EventCaptureTaken, 10, EventMetadata{})
	record(EventReportSuccess, 10, EventMetadata{"npc_id": "pigeon_feeder"})
	record(EventCaptureTaken, 20, EventMetadata{})
	record(EventReportSuccess, 20, EventMetadata{"npc_id": "pigeon_feeder"})
	record(EventBacklash, 20, EventMetadata{})
	record(EventCaptureTaken, 25, EventMetadata{})
	record(EventFalseReport, 25, EventMetadata{})
	record(EventBacklash, 25, EventMetadata{})
	record(EventCaptureTaken, 30, EventMetadata{})
	record(EventCaptureFailed, 30, EventMetadata{})
	record(EventGameOver, 30, EventMetadata{"reason": "time_up"})

	events, err := repo.GetEvents(0, nil)
	require.NoError(t, err)
	stats, err := CalculateStats(events)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Captures)
	assert.Equal(t, 1, stats.FailedCaptures)
	assert.Equal(t, 2, stats.Reports)
	assert.Equal(t, 1, stats.FalseReports)
	assert.Equal(t, 2, stats.NPCsSpawned)
	assert.Equal(t, 2, stats.SpawnsByNPC["pigeon_feeder"])
	assert.Equal(t, 2, stats.ReportsByNPC["pigeon_feeder"])
	assert.InDelta(t, 2.0/3.0, stats.Accuracy, 1e-9)
	assert.InDelta(t, 2.0/3.0, stats.BacklashRate, 1e-9)
	assert.Equal(t, "time_up", stats.LastGameOver)
	assert.Equal(t, 30.0, stats.ObservedSeconds)
	assert.InDelta(t, 8.0, stats.CapturesPerMin, 1e-9)
}

func TestCalculateStatsEmpty(t *testing.T) {
	stats, err := CalculateStats(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.Accuracy)
	assert.Empty(t, stats.EventCounts)
}
