package schedule

import (
	"errors"
	"fmt"
)

// Failure classes. Concrete errors below unwrap to one of these.
var (
	ErrLoadFailure      = errors.New("day schedule load failed")
	ErrCreationFailure  = errors.New("booking creation failed")
	ErrPersistenceDrift = errors.New("reposition not persisted")
)

// Load validation errors.
var (
	ErrUnknownResource = errors.New("booking references an unknown resource")
	ErrDuplicateID     = errors.New("duplicate id")
)

// Drag errors.
var (
	ErrDragInProgress = errors.New("a drag is already in progress")
	ErrNotDragging    = errors.New("no drag in progress")
	ErrUnknownBooking = errors.New("booking is not on the board")
	ErrInvalidColumn  = errors.New("drop target is not a resource column")
)

// Creation input errors.
var (
	ErrEmptyCustomerName = errors.New("customer name is required")
	ErrInvalidResource   = errors.New("no such resource")
	ErrInvalidService    = errors.New("no such service")
	ErrOutsideDomain     = errors.New("time is outside the board's hours")
)

// LoadError reports a failed fetch or a malformed row during a day load.
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading day: %s: %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoadFailure, e.Err}
}

// CreationStep names the stage of the creation flow that failed.
type CreationStep string

const (
	StepValidate CreationStep = "validate"
	StepCustomer CreationStep = "customer"
	StepBooking  CreationStep = "booking"
)

// CreationError reports an aborted creation flow. CustomerID is set when
// the customer insert succeeded before the booking insert failed;
// CustomerRemoved tells whether the cleanup step deleted it again.
type CreationError struct {
	Step            CreationStep
	CustomerID      string
	CustomerRemoved bool
	Err             error
}

func (e *CreationError) Error() string {
	if e.CustomerID != "" && !e.CustomerRemoved {
		return fmt.Sprintf("creating booking: %s step (customer %s kept): %v", e.Step, e.CustomerID, e.Err)
	}
	return fmt.Sprintf("creating booking: %s step: %v", e.Step, e.Err)
}

func (e *CreationError) Unwrap() []error {
	return []error{ErrCreationFailure, e.Err}
}

// DriftError reports a reposition whose write failed after the local
// state was already committed.
type DriftError struct {
	BookingID string
	Err       error
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("booking %s: local placement not persisted: %v", e.BookingID, e.Err)
}

func (e *DriftError) Unwrap() []error {
	return []error{ErrPersistenceDrift, e.Err}
}
