package entities

import "time"

// TollNotification represents automatic clearance of a transit checkpoint
// for a transport unit. Exactly one is created per trip, at trip creation,
// and it is never mutated afterwards. This core models automatic clearance
// only, so Cleared is always true.
type TollNotification struct {
	ID              string    `json:"id"`
	TollName        string    `json:"toll_name"`
	TransportUnitID string    `json:"transport_unit_id"`
	Lane            string    `json:"lane"`
	CreatedAt       time.Time `json:"created_at"`
	Cleared         bool      `json:"cleared"`
}
