package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatusCancellable(t *testing.T) {
	assert.True(t, StatusPending.Cancellable())
	assert.True(t, StatusConfirmed.Cancellable())
	assert.False(t, StatusCancelled.Cancellable())
	assert.False(t, StatusCompleted.Cancellable())
}

func TestBookingStatusCountsTowardOccupancy(t *testing.T) {
	assert.True(t, StatusPending.CountsTowardOccupancy())
	assert.True(t, StatusConfirmed.CountsTowardOccupancy())
	assert.True(t, StatusCompleted.CountsTowardOccupancy())
	assert.False(t, StatusCancelled.CountsTowardOccupancy())
}

func TestRemainingSlots(t *testing.T) {
	entry := &DailyCapacity{MaxCapacity: 50, CurrentBookings: 42}
	assert.Equal(t, 8, entry.RemainingSlots())

	full := &DailyCapacity{MaxCapacity: 10, CurrentBookings: 10}
	assert.Equal(t, 0, full.RemainingSlots())

	// Admin lowered the cap below current occupancy.
	overbooked := &DailyCapacity{MaxCapacity: 5, CurrentBookings: 8}
	assert.Equal(t, 0, overbooked.RemainingSlots())
}
