package room

type RoomReq struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Capacity     int      `json:"capacity" validate:"required,gt=0"`
	PricePerHour float64  `json:"price_per_hour" validate:"gte=0"`
	Amenities    []string `json:"amenities"`
}
