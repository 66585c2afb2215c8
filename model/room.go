// model/room.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Capacity     int       `json:"capacity"`
	PricePerHour float64   `json:"price_per_hour"`
	Amenities    []string  `json:"amenities"`
	CreatedAt    time.Time `json:"created_at"`
}
