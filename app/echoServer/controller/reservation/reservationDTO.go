package reservation

import "time"

// Start/end are bound without validate tags on purpose: the booking
// validator reports missing or malformed times field by field.
type CreateReservationReq struct {
	RoomID    string    `json:"room_id" validate:"required,uuid"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Notes     *string   `json:"notes"`
	Pending   bool      `json:"pending"`
}
