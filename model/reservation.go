// model/reservation.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Invariant: for one room, confirmed reservations never overlap in time.
type Reservation struct {
	ID        uuid.UUID         `json:"id"`
	RoomID    uuid.UUID         `json:"room_id"`
	UserID    uuid.UUID         `json:"user_id"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Status    ReservationStatus `json:"status"`
	Notes     *string           `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
