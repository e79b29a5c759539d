package usecase

import "errors"

// Business-rule errors. Each one means the transaction was aborted with no
// partial writes; retrying with the same inputs cannot change the outcome.
var (
	ErrSlotNotFound    = errors.New("slot not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotNotOpen     = errors.New("slot is not open for booking")
	ErrSlotFull        = errors.New("slot has no remaining capacity")
	ErrAlreadyBooked   = errors.New("user already has an active booking for this slot")
	ErrForbidden       = errors.New("not allowed to modify this booking")
	ErrNotCancelable   = errors.New("booking status does not allow cancellation")
	ErrBookingFinal    = errors.New("booking status is terminal and cannot change")
	ErrNoWaitlistEntry = errors.New("no waitlist entry for this slot")
)
