package telemetry

import (
	"encoding/json"
	"sync"
	"time"
)

// Repository stores gameplay events
type Repository interface {
	RecordEvent(eventType EventType, gameTime float64, metadata EventMetadata) error
	GetEvents(sinceGameTime float64, eventTypes []EventType) ([]Event, error)
	Clear() error
}

// MemoryRepository stores events in memory. It is read by HTTP handlers
// while the game loop writes, hence the lock.
type MemoryRepository struct {
	mu     sync.RWMutex
	events []Event
	nextID int
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		events: make([]Event, 0),
		nextID: 1,
		now:    time.Now,
	}
}

func (r *MemoryRepository) RecordEvent(eventType EventType, gameTime float64, metadata EventMetadata) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Event{
		ID:        r.nextID,
		Type:      eventType,
		GameTime:  gameTime,
		Timestamp: r.now(),
		Metadata:  string(metadataJSON),
	})
	r.nextID++

	return nil
}

func (r *MemoryRepository) GetEvents(sinceGameTime float64, eventTypes []EventType) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeFilter := make(map[EventType]bool)
	for _, t := range eventTypes {
		typeFilter[t] = true
	}

	result := make([]Event, 0)
	for _, event := range r.events {
		if event.GameTime < sinceGameTime {
			continue
		}
		if len(eventTypes) > 0 && !typeFilter[event.Type] {
			continue
		}
		result = append(result, event)
	}

	return result, nil
}

// Len returns the number of stored events.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

func (r *MemoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make([]Event, 0)
	r.nextID = 1

	return nil
}

// Discard is a Repository that drops every event.
type Discard struct{}

func (Discard) RecordEvent(EventType, float64, EventMetadata) error { return nil }
func (Discard) GetEvents(float64, []EventType) ([]Event, error)     { return nil, nil }
func (Discard) Clear() error                                        { return nil }
