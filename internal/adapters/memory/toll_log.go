package memory

import (
	"context"
	"sync"

	"github.com/resqlink/dispatch/internal/domain/entities"
	apperrors "github.com/resqlink/dispatch/pkg/errors"
)

// TollLog implements TollNotificationRepository as an in-process
// append-only log, newest first. Retention is an external concern; the
// dispatch core never updates or deletes entries.
type TollLog struct {
	mu    sync.RWMutex
	tolls []*entities.TollNotification
}

// NewTollLog creates an empty toll notification log
func NewTollLog() *TollLog {
	return &TollLog{}
}

// Append records a new toll notification
func (l *TollLog) Append(ctx context.Context, toll *entities.TollNotification) error {
	if toll == nil || toll.ID == "" {
		return apperrors.NewValidationError("toll notification with an ID is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cp := *toll
	l.tolls = append([]*entities.TollNotification{&cp}, l.tolls...)
	return nil
}

// List retrieves all notifications, newest first
func (l *TollLog) List(ctx context.Context) ([]*entities.TollNotification, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*entities.TollNotification, len(l.tolls))
	for i, toll := range l.tolls {
		cp := *toll
		out[i] = &cp
	}
	return out, nil
}
