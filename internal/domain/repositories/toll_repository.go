package repositories

import (
	"context"

	"github.com/resqlink/dispatch/internal/domain/entities"
)

// TollNotificationRepository defines the append-only log of toll
// clearance notifications. Records are never updated or deleted within
// the dispatch core; retention is an external concern.
type TollNotificationRepository interface {
	// Append records a new toll notification
	Append(ctx context.Context, toll *entities.TollNotification) error

	// List retrieves all notifications, newest first
	List(ctx context.Context) ([]*entities.TollNotification, error)
}
