package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ResourceRecord is a resource row as returned by a store.
type ResourceRecord struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	ColorHex    string `json:"color_hex,omitempty"`
}

// Validate checks the required fields of a resource row.
func (r ResourceRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(r.DisplayName) == "" {
		return fmt.Errorf("resource %s: %w", r.ID, ErrEmptyName)
	}
	if r.ColorHex != "" && !ValidColor(r.ColorHex) {
		return fmt.Errorf("resource %s: %w", r.ID, ErrInvalidColor)
	}
	return nil
}

// ServiceRecord is a service row as returned by a store.
type ServiceRecord struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
}

// Validate checks the required fields of a service row.
func (s ServiceRecord) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("service %s: %w", s.ID, ErrEmptyName)
	}
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("service %s: %w", s.ID, ErrInvalidDuration)
	}
	if s.Price.IsNegative() {
		return fmt.Errorf("service %s: %w", s.ID, ErrNegativePrice)
	}
	return nil
}

// BookingRecord is a booking row for a single day as returned by a store.
type BookingRecord struct {
	ID                string    `json:"id"`
	ResourceID        string    `json:"resource_id"`
	CustomerFirstName string    `json:"customer_first_name"`
	CustomerLastName  string    `json:"customer_last_name"`
	ServiceName       string    `json:"service_name"`
	Start             time.Time `json:"start"`
	DurationMinutes   int       `json:"duration_minutes"`
}

// Validate checks the required fields of a booking row.
func (b BookingRecord) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(b.ResourceID) == "" {
		return fmt.Errorf("booking %s: resource: %w", b.ID, ErrEmptyID)
	}
	if b.Start.IsZero() {
		return fmt.Errorf("booking %s: %w", b.ID, ErrMissingStart)
	}
	if b.DurationMinutes <= 0 {
		return fmt.Errorf("booking %s: %w", b.ID, ErrInvalidDuration)
	}
	return nil
}

// Store is the data-access contract the day board consumes.
type Store interface {
	// FetchResources returns resources in their stable display order.
	FetchResources(ctx context.Context) ([]ResourceRecord, error)

	// FetchServices returns all bookable services.
	FetchServices(ctx context.Context) ([]ServiceRecord, error)

	// FetchBookingsForDate returns the non-cancelled bookings starting on date's day.
	FetchBookingsForDate(ctx context.Context, date time.Time) ([]BookingRecord, error)

	// CreateCustomer inserts a customer and returns its id.
	CreateCustomer(ctx context.Context, firstName, lastName string) (string, error)

	// CreateBooking inserts a booking and returns its id.
	CreateBooking(ctx context.Context, b NewBooking) (string, error)

	// UpdateBookingResourceAndTime moves a booking to another resource and start.
	// Returns ErrNotFound if the booking does not exist.
	UpdateBookingResourceAndTime(ctx context.Context, bookingID, resourceID string, start time.Time) error
}

// CustomerRemover is implemented by stores that can delete a customer.
// It backs the optional orphan cleanup after a failed booking insert.
type CustomerRemover interface {
	DeleteCustomer(ctx context.Context, customerID string) error
}

// Seeder is implemented by stores that accept roster imports.
type Seeder interface {
	UpsertResource(ctx context.Context, r ResourceRecord, position int) error
	UpsertService(ctx context.Context, s ServiceRecord) error
}
