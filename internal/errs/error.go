package errs

import (
	"errors"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidDateFormat    = errors.New("invalid date format")
	ErrInvalidTemporalOrder = errors.New("return date must be strictly after start date")
	ErrVehicleUnavailable   = errors.New("vehicle is not available")
	ErrRenterBlacklisted    = errors.New("renter is blacklisted")
	ErrRenterHasActiveRent  = errors.New("renter already has an active rental")
	ErrAlreadyCompleted     = errors.New("rental already completed")
	ErrInvalidTransition    = errors.New("operation not allowed in current rental state")

	// ErrCalculationInvariant guards against negative durations or fines
	// reaching persistence. It should never surface to a client.
	ErrCalculationInvariant = errors.New("calculation invariant violation")
)
