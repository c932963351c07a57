package repository

import "errors"

// Conflict outcomes of a version-guarded conditional write. The service
// layer retries ErrStaleVersion and treats the bound violations as
// terminal.
var (
	ErrStaleVersion       = errors.New("stale version: row changed since read")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrOccupancyUnderflow = errors.New("occupancy would fall below zero")
)
