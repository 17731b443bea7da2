package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/timegrid"
)

type updateCall struct {
	BookingID  string
	ResourceID string
	Start      time.Time
}

// fakeStore records calls in order and lets tests inject failures.
type fakeStore struct {
	mu sync.Mutex

	resources []booking.ResourceRecord
	services  []booking.ServiceRecord
	bookings  []booking.BookingRecord

	resourcesErr error
	servicesErr  error
	bookingsErr  error
	customerErr  error
	bookingErr   error
	updateErr    error
	deleteErr    error

	calls       []string
	customers   [][2]string
	newBookings []booking.NewBooking
	updates     []updateCall
	deleted     []string

	// release, when set, blocks UpdateBookingResourceAndTime until closed.
	release chan struct{}
}

func (f *fakeStore) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeStore) FetchResources(context.Context) ([]booking.ResourceRecord, error) {
	f.record("FetchResources")
	if f.resourcesErr != nil {
		return nil, f.resourcesErr
	}
	return f.resources, nil
}

func (f *fakeStore) FetchServices(context.Context) ([]booking.ServiceRecord, error) {
	f.record("FetchServices")
	if f.servicesErr != nil {
		return nil, f.servicesErr
	}
	return f.services, nil
}

func (f *fakeStore) FetchBookingsForDate(context.Context, time.Time) ([]booking.BookingRecord, error) {
	f.record("FetchBookingsForDate")
	if f.bookingsErr != nil {
		return nil, f.bookingsErr
	}
	return f.bookings, nil
}

func (f *fakeStore) CreateCustomer(_ context.Context, first, last string) (string, error) {
	f.record("CreateCustomer")
	if f.customerErr != nil {
		return "", f.customerErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers = append(f.customers, [2]string{first, last})
	return fmt.Sprintf("cust-%d", len(f.customers)), nil
}

func (f *fakeStore) CreateBooking(_ context.Context, b booking.NewBooking) (string, error) {
	f.record("CreateBooking")
	if f.bookingErr != nil {
		return "", f.bookingErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newBookings = append(f.newBookings, b)
	return fmt.Sprintf("bk-%d", len(f.newBookings)), nil
}

func (f *fakeStore) UpdateBookingResourceAndTime(_ context.Context, id, resourceID string, start time.Time) error {
	if f.release != nil {
		<-f.release
	}
	f.record("UpdateBookingResourceAndTime")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updateCall{BookingID: id, ResourceID: resourceID, Start: start})
	return f.updateErr
}

func (f *fakeStore) DeleteCustomer(_ context.Context, id string) error {
	f.record("DeleteCustomer")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeStore) Updates() []updateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]updateCall(nil), f.updates...)
}

// storeWithoutDelete hides DeleteCustomer from the creation flow.
type storeWithoutDelete struct {
	booking.Store
}

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)

func at(hhmm string) time.Time {
	return booking.MustClock(hhmm).On(testDate)
}

func testLayout() Layout {
	return Layout{
		Grid: timegrid.MustNew(timegrid.Params{
			DomainStart: booking.MustClock("08:00"),
			DomainEnd:   booking.MustClock("20:00"),
			Granularity: 30,
			SlotHeight:  60,
		}),
		Palette: []string{"#111111", "#222222", "#333333"},
	}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		resources: []booking.ResourceRecord{
			{ID: "res-mia", DisplayName: "Mia"},
			{ID: "res-leo", DisplayName: "Leo", ColorHex: "#ff8800"},
			{ID: "res-ana", DisplayName: "Ana"},
			{ID: "res-tom", DisplayName: "Tom"},
		},
		services: []booking.ServiceRecord{
			{ID: "svc-cut", Name: "Cut", Price: decimal.RequireFromString("35.00"), DurationMinutes: 30},
			{ID: "svc-color", Name: "Color", Price: decimal.RequireFromString("80.50"), DurationMinutes: 90},
		},
		bookings: []booking.BookingRecord{
			{ID: "bk-x", ResourceID: "res-mia", CustomerFirstName: "Eva", CustomerLastName: "Berg", ServiceName: "Cut", Start: at("10:00"), DurationMinutes: 30},
			{ID: "bk-y", ResourceID: "res-leo", CustomerFirstName: "Jon", ServiceName: "Color", Start: at("11:15"), DurationMinutes: 90},
		},
	}
}

func mustClock(s string) booking.Clock {
	return booking.MustClock(s)
}
