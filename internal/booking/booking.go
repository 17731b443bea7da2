// Package booking defines the core domain types for salonboard.
package booking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Validation errors.
var (
	ErrEmptyID           = errors.New("id cannot be empty")
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrInvalidColor      = errors.New("color must be a #RGB or #RRGGBB hex value")
	ErrInvalidDuration   = errors.New("duration must be a positive number of minutes")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrMissingStart      = errors.New("start time is required")
	ErrInvalidStatus     = errors.New("status must be pending, confirmed or cancelled")
)

// Domain errors.
var (
	ErrNotFound   = errors.New("not found")
	ErrConstraint = errors.New("unknown reference or conflicting record")
)

// Status represents the lifecycle state of a booking in the store.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Resource is a schedulable entity rendered as one column.
type Resource struct {
	ID          string
	DisplayName string
	ColorHex    string // optional; empty means use the fallback palette
}

// Service is something a customer can book.
type Service struct {
	ID              string
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
}

// Booking is a view-local booking placed on the day grid.
// ResourceIndex is a position in the loaded resource list, not a stored key.
type Booking struct {
	ID                  string
	CustomerDisplayName string
	ServiceName         string
	ResourceIndex       int
	Start               Clock
	DurationMinutes     int
}

// End returns the wall-clock end of the booking.
func (b *Booking) End() Clock {
	return b.Start.Add(b.DurationMinutes)
}

// Customer is a person bookings are made for.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
}

// DisplayName joins first and last name.
func (c Customer) DisplayName() string {
	return JoinName(c.FirstName, c.LastName)
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether s is a #RGB or #RRGGBB hex color.
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}

// SplitName splits a free-text customer name at the first run of whitespace.
// The remainder, trimmed, becomes the last name and may be empty.
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	idx := strings.IndexFunc(name, unicode.IsSpace)
	if idx < 0 {
		return name, ""
	}
	return name[:idx], strings.TrimSpace(name[idx:])
}

// JoinName is the inverse of SplitName for display purposes.
func JoinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// NewBooking holds the fields needed to insert a booking in the store.
type NewBooking struct {
	CustomerID      string          `json:"customer_id"`
	ResourceID      string          `json:"resource_id"`
	ServiceID       string          `json:"service_id"`
	Start           time.Time       `json:"start"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Status          Status          `json:"status"`
}

// Validate checks the booking insert request.
func (n NewBooking) Validate() error {
	switch {
	case n.CustomerID == "":
		return fmt.Errorf("customer: %w", ErrEmptyID)
	case n.ResourceID == "":
		return fmt.Errorf("resource: %w", ErrEmptyID)
	case n.ServiceID == "":
		return fmt.Errorf("service: %w", ErrEmptyID)
	case n.Start.IsZero():
		return ErrMissingStart
	case n.DurationMinutes <= 0:
		return ErrInvalidDuration
	case n.Price.IsNegative():
		return ErrNegativePrice
	case !n.Status.Valid():
		return ErrInvalidStatus
	}
	return nil
}
