package dto

import (
	"time"

	"github.com/wisatatrek/tour-booking-service/internal/models"
)

type BookingResponse struct {
	ID             string               `json:"id"`
	UserID         string               `json:"user_id"`
	RouteID        string               `json:"route_id"`
	RouteName      string               `json:"route_name,omitempty"`
	BookingDate    string               `json:"booking_date"`
	NumberOfPeople int                  `json:"number_of_people"`
	TotalPrice     float64              `json:"total_price"`
	Notes          string               `json:"notes,omitempty"`
	Status         models.BookingStatus `json:"status"`
	PaymentStatus  models.PaymentStatus `json:"payment_status"`
	CreatedAt      time.Time            `json:"created_at"`
}

type RouteResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	DurationHours int     `json:"duration_hours"`
	Difficulty    string  `json:"difficulty,omitempty"`
	IsActive      bool    `json:"is_active"`
}

type CapacityResponse struct {
	ID              uint   `json:"id"`
	RouteID         string `json:"route_id"`
	RouteName       string `json:"route_name,omitempty"`
	Date            string `json:"date"`
	MaxCapacity     int    `json:"max_capacity"`
	CurrentBookings int    `json:"current_bookings"`
	RemainingSlots  int    `json:"remaining_slots"`
}

type AvailabilityResponse struct {
	RouteID        string `json:"route_id"`
	Date           string `json:"date"`
	RemainingSlots int    `json:"remaining_slots"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		RouteID:        b.RouteID,
		BookingDate:    b.BookingDate,
		NumberOfPeople: b.NumberOfPeople,
		TotalPrice:     b.TotalPrice,
		Notes:          b.Notes,
		Status:         b.Status,
		PaymentStatus:  b.PaymentStatus,
		CreatedAt:      b.CreatedAt,
	}
	if b.Route != nil {
		resp.RouteName = b.Route.Name
	}
	return resp
}

func ToRouteResponse(r *models.Route) RouteResponse {
	return RouteResponse{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		DurationHours: r.DurationHours,
		Difficulty:    r.Difficulty,
		IsActive:      r.IsActive,
	}
}

func ToCapacityResponse(c *models.DailyCapacity) CapacityResponse {
	resp := CapacityResponse{
		ID:              c.ID,
		RouteID:         c.RouteID,
		Date:            c.Date,
		MaxCapacity:     c.MaxCapacity,
		CurrentBookings: c.CurrentBookings,
		RemainingSlots:  c.RemainingSlots(),
	}
	if c.Route != nil {
		resp.RouteName = c.Route.Name
	}
	return resp
}
