package service

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid booking request")
	ErrRouteNotFound        = errors.New("route not found or inactive")
	ErrInsufficientCapacity = errors.New("not enough available slots for this date")
	ErrSystemBusy           = errors.New("system busy, please try again")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrNotCancellable       = errors.New("booking cannot be cancelled")
	ErrInvalidTransition    = errors.New("invalid booking status transition")
	ErrInvariantViolation   = errors.New("capacity invariant violated")
	ErrRouteHasBookings     = errors.New("route has bookings and cannot be deleted; deactivate it instead")
)
