package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlotTaken is returned when a booking would overlap an existing
	// confirmed booking for the same event type.
	ErrSlotTaken = errors.New("slot already booked")
)
