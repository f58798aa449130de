package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotConflict means the requested (date, time) is already occupied.
	ErrSlotConflict = errors.New("that time slot is already booked")
	// ErrSlotTaken is returned by stores when an insert violates the
	// (date, time) uniqueness constraint.
	ErrSlotTaken       = errors.New("slot uniqueness violated")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUnauthorized    = errors.New("unauthorized")
)

// ValidationError names the first request field that failed a check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotificationError wraps a failed confirmation send. It is reported as a
// warning on an otherwise successful booking.
type NotificationError struct {
	Recipient string
	Err       error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("send confirmation to %s: %v", e.Recipient, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// StoreError is an unexpected persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
