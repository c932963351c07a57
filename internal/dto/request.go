package dto

type CreateBookingRequest struct {
	RouteID        string `json:"route_id"`
	BookingDate    string `json:"booking_date"`
	NumberOfPeople int    `json:"number_of_people"`
	Notes          string `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

type SetCapacityRequest struct {
	RouteID     string `json:"route_id"`
	Date        string `json:"date"`
	MaxCapacity int    `json:"max_capacity"`
}

type CreateRouteRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	DurationHours int     `json:"duration_hours"`
	Difficulty    string  `json:"difficulty"`
}

type UpdateRouteRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	DurationHours *int     `json:"duration_hours,omitempty"`
	Difficulty    *string  `json:"difficulty,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}
