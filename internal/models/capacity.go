package models

import "time"

// DailyCapacity is the per (route, date) ledger of bookable slots.
// Version is the optimistic-lock token: every successful mutation of
// CurrentBookings increments it by exactly one, and writers must present
// the version they read for the write to apply.
type DailyCapacity struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RouteID         string    `gorm:"type:uuid;not null;uniqueIndex:idx_capacity_route_date" json:"route_id"`
	Date            string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_capacity_route_date" json:"date"`
	MaxCapacity     int       `gorm:"not null" json:"max_capacity"`
	CurrentBookings int       `gorm:"not null;default:0" json:"current_bookings"`
	Version         int64     `gorm:"not null;default:0" json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Route *Route `gorm:"foreignKey:RouteID" json:"route,omitempty"`
}

// RemainingSlots reports how many more people fit on this date. An
// administrator can lower MaxCapacity below CurrentBookings; existing
// bookings stand, so the result clamps at zero rather than going
// negative.
func (c *DailyCapacity) RemainingSlots() int {
	if remaining := c.MaxCapacity - c.CurrentBookings; remaining > 0 {
		return remaining
	}
	return 0
}
