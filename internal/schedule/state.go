// Package schedule holds the day board's state and the workflows that
// mutate it: loading a day, repositioning a booking by drag and drop,
// and creating a booking for a new or walk-in customer.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/dateutil"
	"github.com/javiermolinar/salonboard/internal/metrics"
	"github.com/javiermolinar/salonboard/internal/timegrid"
)

// Layout is the fixed presentation input of a day: the time grid and the
// fallback palette.
type Layout struct {
	Grid    timegrid.Grid
	Palette []string
}

// DayState is the loaded board for one date. Bookings are owned by the
// state and mutated in place by the drag controller; everything else is
// replaced wholesale by a reload.
type DayState struct {
	date      time.Time
	layout    Layout
	resources []booking.Resource
	services  []booking.Service
	bookings  []*booking.Booking
	colors    []string
}

// NewDayState returns an empty board for date.
func NewDayState(date time.Time, layout Layout) *DayState {
	return &DayState{
		date:   dateutil.TruncateToDay(date),
		layout: layout,
	}
}

// Load fetches resources, services and bookings for date and builds a
// new DayState. Any fetch error or malformed row fails the whole load.
func Load(ctx context.Context, store booking.Store, date time.Time, layout Layout) (*DayState, error) {
	s, err := load(ctx, store, date, layout)
	metrics.ObserveDayLoad(err)
	return s, err
}

func load(ctx context.Context, store booking.Store, date time.Time, layout Layout) (*DayState, error) {
	s := NewDayState(date, layout)

	resourceRows, err := store.FetchResources(ctx)
	if err != nil {
		return nil, &LoadError{Op: "fetch resources", Err: err}
	}
	serviceRows, err := store.FetchServices(ctx)
	if err != nil {
		return nil, &LoadError{Op: "fetch services", Err: err}
	}
	bookingRows, err := store.FetchBookingsForDate(ctx, s.date)
	if err != nil {
		return nil, &LoadError{Op: "fetch bookings", Err: err}
	}

	resourceIndex := make(map[string]int, len(resourceRows))
	for i, r := range resourceRows {
		if err := r.Validate(); err != nil {
			return nil, &LoadError{Op: fmt.Sprintf("resource row %d", i), Err: err}
		}
		if _, dup := resourceIndex[r.ID]; dup {
			return nil, &LoadError{Op: fmt.Sprintf("resource row %d", i), Err: fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)}
		}
		resourceIndex[r.ID] = i
		s.resources = append(s.resources, booking.Resource{
			ID:          r.ID,
			DisplayName: r.DisplayName,
			ColorHex:    r.ColorHex,
		})
	}

	for i, sv := range serviceRows {
		if err := sv.Validate(); err != nil {
			return nil, &LoadError{Op: fmt.Sprintf("service row %d", i), Err: err}
		}
		s.services = append(s.services, booking.Service{
			ID:              sv.ID,
			Name:            sv.Name,
			Price:           sv.Price,
			DurationMinutes: sv.DurationMinutes,
		})
	}

	seen := make(map[string]bool, len(bookingRows))
	for i, b := range bookingRows {
		if err := b.Validate(); err != nil {
			return nil, &LoadError{Op: fmt.Sprintf("booking row %d", i), Err: err}
		}
		if seen[b.ID] {
			return nil, &LoadError{Op: fmt.Sprintf("booking row %d", i), Err: fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)}
		}
		seen[b.ID] = true

		idx, ok := resourceIndex[b.ResourceID]
		if !ok {
			return nil, &LoadError{Op: fmt.Sprintf("booking row %d", i), Err: fmt.Errorf("%w: %s", ErrUnknownResource, b.ResourceID)}
		}

		s.bookings = append(s.bookings, &booking.Booking{
			ID:                  b.ID,
			CustomerDisplayName: booking.JoinName(b.CustomerFirstName, b.CustomerLastName),
			ServiceName:         b.ServiceName,
			ResourceIndex:       idx,
			Start:               s.clampToDomain(booking.ClockOf(b.Start)),
			DurationMinutes:     b.DurationMinutes,
		})
	}

	s.colors = Palette(s.resources, layout.Palette)
	return s, nil
}

// clampToDomain keeps in-domain times exact and snaps anything outside
// onto the nearest boundary slot.
func (s *DayState) clampToDomain(c booking.Clock) booking.Clock {
	if s.layout.Grid.Contains(c) {
		return c
	}
	return s.layout.Grid.Snap(c)
}

// Date returns the displayed day at local midnight.
func (s *DayState) Date() time.Time { return s.date }

// Layout returns the grid and palette the state was built with.
func (s *DayState) Layout() Layout { return s.layout }

// Grid returns the board's time grid.
func (s *DayState) Grid() timegrid.Grid { return s.layout.Grid }

// Resources returns the resources in column order.
func (s *DayState) Resources() []booking.Resource { return s.resources }

// Services returns the loaded services.
func (s *DayState) Services() []booking.Service { return s.services }

// Bookings returns the bookings in load order.
func (s *DayState) Bookings() []*booking.Booking { return s.bookings }

// Resource returns the resource at column i.
func (s *DayState) Resource(i int) (booking.Resource, bool) {
	if i < 0 || i >= len(s.resources) {
		return booking.Resource{}, false
	}
	return s.resources[i], true
}

// Service returns the service at index i.
func (s *DayState) Service(i int) (booking.Service, bool) {
	if i < 0 || i >= len(s.services) {
		return booking.Service{}, false
	}
	return s.services[i], true
}

// Color returns the display color of column i.
func (s *DayState) Color(i int) string {
	if i < 0 || i >= len(s.colors) {
		return ""
	}
	return s.colors[i]
}

// BookingByID returns the booking with the given id, or nil.
func (s *DayState) BookingByID(id string) *booking.Booking {
	for _, b := range s.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// BookingsForResource returns the bookings in column i, in load order.
func (s *DayState) BookingsForResource(i int) []*booking.Booking {
	var out []*booking.Booking
	for _, b := range s.bookings {
		if b.ResourceIndex == i {
			out = append(out, b)
		}
	}
	return out
}

// BookingAt returns the last-listed booking in column i whose card
// covers slot. Co-located bookings are drawn in list order, so the last
// one is the one on top.
func (s *DayState) BookingAt(column, slot int) *booking.Booking {
	return s.BookingAtRow(column, slot*s.layout.Grid.SlotHeight())
}

// BookingAtRow is BookingAt for a row offset within the grid body.
func (s *DayState) BookingAtRow(column, row int) *booking.Booking {
	g := s.layout.Grid
	var hit *booking.Booking
	for _, b := range s.bookings {
		if b.ResourceIndex != column {
			continue
		}
		r := Place(g, b)
		if row >= r.Top && row < r.Bottom() {
			hit = b
		}
	}
	return hit
}

// Stats summarises the board.
type Stats struct {
	Bookings      int
	BookedMinutes int
	PerResource   []int // booked minutes by column
}

// Stats returns booking totals for the day.
func (s *DayState) Stats() Stats {
	st := Stats{PerResource: make([]int, len(s.resources))}
	for _, b := range s.bookings {
		st.Bookings++
		st.BookedMinutes += b.DurationMinutes
		if b.ResourceIndex >= 0 && b.ResourceIndex < len(st.PerResource) {
			st.PerResource[b.ResourceIndex] += b.DurationMinutes
		}
	}
	return st
}

// place moves b in place. Callers guarantee column is valid.
func (s *DayState) place(b *booking.Booking, column int, start booking.Clock) {
	b.ResourceIndex = column
	b.Start = start
}
