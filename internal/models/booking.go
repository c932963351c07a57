package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

const (
	MinPartySize = 1
	MaxPartySize = 8
)

type Booking struct {
	ID              string        `gorm:"primaryKey;type:uuid" json:"id"`
	UserID          string        `gorm:"not null;index" json:"user_id"`
	RouteID         string        `gorm:"type:uuid;not null;index" json:"route_id"`
	DailyCapacityID uint          `gorm:"not null" json:"daily_capacity_id"`
	BookingDate     string        `gorm:"type:varchar(10);not null" json:"booking_date"`
	NumberOfPeople  int           `gorm:"not null" json:"number_of_people"`
	TotalPrice      float64       `gorm:"not null" json:"total_price"`
	Notes           string        `json:"notes,omitempty"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"payment_status"`
	Version         int64         `gorm:"not null;default:0" json:"version"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Route *Route `gorm:"foreignKey:RouteID" json:"route,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// CanTransitionTo encodes the booking state machine:
// PENDING -> CONFIRMED | CANCELLED, CONFIRMED -> CANCELLED | COMPLETED.
// CANCELLED and COMPLETED are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	default:
		return false
	}
}

// Cancellable reports whether the booking still holds capacity that a
// cancellation would have to release.
func (s BookingStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CountsTowardOccupancy reports whether the booking's party is included
// in its capacity entry's current_bookings.
func (s BookingStatus) CountsTowardOccupancy() bool {
	return s != StatusCancelled
}
