package providers

import (
	"context"

	"github.com/resqlink/dispatch/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// dispatch events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.TripEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.TripEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelTripUpdates is the channel for all trip updates
	EventChannelTripUpdates = "trips:updates"

	// EventChannelTripPrefix is the prefix for trip-specific channels
	EventChannelTripPrefix = "trips:"

	// EventChannelTollUpdates is the channel for toll clearance notifications
	EventChannelTollUpdates = "tolls:updates"
)

// GetTripChannel returns the channel name for a specific trip
func GetTripChannel(tripID string) string {
	return EventChannelTripPrefix + tripID
}
