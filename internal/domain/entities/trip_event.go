package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// TripEventType represents the type of real-time dispatch event
type TripEventType string

const (
	TripEventTypeCreated     TripEventType = "trip_created"
	TripEventTypeUpdated     TripEventType = "trip_updated"
	TripEventTypeArrived     TripEventType = "trip_arrived"
	TripEventTypeTollCleared TripEventType = "toll_cleared"
)

// TripEvent is the envelope published on the event bus after each
// lifecycle change or completed update cycle. Consumers must treat the
// embedded snapshots as immutable.
type TripEvent struct {
	ID        string            `json:"id"`
	TripID    string            `json:"trip_id"`
	EventType TripEventType     `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	Trip      *Trip             `json:"trip,omitempty"`
	Toll      *TollNotification `json:"toll,omitempty"`
}

// NewTripEvent creates a new trip event carrying a trip snapshot
func NewTripEvent(eventType TripEventType, trip *Trip) *TripEvent {
	return &TripEvent{
		ID:        generateEventID(),
		TripID:    trip.ID,
		EventType: eventType,
		Timestamp: time.Now(),
		Trip:      trip,
	}
}

// NewTollEvent creates a new toll clearance event
func NewTollEvent(tripID string, toll *TollNotification) *TripEvent {
	return &TripEvent{
		ID:        generateEventID(),
		TripID:    tripID,
		EventType: TripEventTypeTollCleared,
		Timestamp: time.Now(),
		Toll:      toll,
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
