package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/metrics"
)

// CreateRequest is what the creation dialog collects.
type CreateRequest struct {
	ResourceIndex   int
	ServiceIndex    int
	Time            booking.Clock
	DurationMinutes int // 0 means the service's default duration
	CustomerName    string
}

// CreatePlan is a validated request with everything resolved against the
// board it was made on. It carries no reference to the DayState, so it
// can be executed off the UI goroutine.
type CreatePlan struct {
	Date            time.Time
	Layout          Layout
	FirstName       string
	LastName        string
	ResourceID      string
	ServiceID       string
	Start           time.Time
	DurationMinutes int
	Price           decimal.Decimal
}

// Created identifies the records a successful flow inserted.
type Created struct {
	CustomerID string
	BookingID  string
}

// CreatorOption configures a Creator.
type CreatorOption func(*Creator)

// WithOrphanCleanup deletes the just-created customer when the booking
// insert fails, if the store supports it.
func WithOrphanCleanup() CreatorOption {
	return func(c *Creator) { c.orphanCleanup = true }
}

// WithCreatorLogger sets the flow's logger.
func WithCreatorLogger(l zerolog.Logger) CreatorOption {
	return func(c *Creator) { c.logger = l }
}

// Creator runs the booking creation flow against a store.
type Creator struct {
	store         booking.Store
	orphanCleanup bool
	logger        zerolog.Logger
}

// NewCreator returns a Creator for store.
func NewCreator(store booking.Store, opts ...CreatorOption) *Creator {
	c := &Creator{store: store, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Prepare validates req against state and resolves ids, price and the
// absolute start.
func Prepare(state *DayState, req CreateRequest) (CreatePlan, error) {
	plan, err := prepare(state, req)
	if err != nil {
		metrics.ObserveBookingCreated(string(StepValidate), err)
		return CreatePlan{}, &CreationError{Step: StepValidate, Err: err}
	}
	return plan, nil
}

func prepare(state *DayState, req CreateRequest) (CreatePlan, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return CreatePlan{}, ErrEmptyCustomerName
	}
	resource, ok := state.Resource(req.ResourceIndex)
	if !ok {
		return CreatePlan{}, ErrInvalidResource
	}
	service, ok := state.Service(req.ServiceIndex)
	if !ok {
		return CreatePlan{}, ErrInvalidService
	}
	if !state.Grid().Contains(req.Time) {
		return CreatePlan{}, ErrOutsideDomain
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = service.DurationMinutes
	}
	if duration <= 0 {
		return CreatePlan{}, booking.ErrInvalidDuration
	}

	first, last := booking.SplitName(req.CustomerName)
	return CreatePlan{
		Date:            state.Date(),
		Layout:          state.Layout(),
		FirstName:       first,
		LastName:        last,
		ResourceID:      resource.ID,
		ServiceID:       service.ID,
		Start:           req.Time.On(state.Date()),
		DurationMinutes: duration,
		Price:           service.Price,
	}, nil
}

// Run executes plan: create the customer, create the booking as pending,
// then reload the whole day. A failed insert aborts with a CreationError.
// A failed reload after a successful insert returns the Created ids with
// a LoadError and a nil state.
func (c *Creator) Run(ctx context.Context, plan CreatePlan) (*DayState, Created, error) {
	var created Created

	customerID, err := c.store.CreateCustomer(ctx, plan.FirstName, plan.LastName)
	if err != nil {
		metrics.ObserveBookingCreated(string(StepCustomer), err)
		return nil, created, &CreationError{Step: StepCustomer, Err: err}
	}
	created.CustomerID = customerID

	bookingID, err := c.store.CreateBooking(ctx, booking.NewBooking{
		CustomerID:      customerID,
		ResourceID:      plan.ResourceID,
		ServiceID:       plan.ServiceID,
		Start:           plan.Start,
		DurationMinutes: plan.DurationMinutes,
		Price:           plan.Price,
		Status:          booking.StatusPending,
	})
	if err != nil {
		metrics.ObserveBookingCreated(string(StepBooking), err)
		return nil, created, &CreationError{
			Step:            StepBooking,
			CustomerID:      customerID,
			CustomerRemoved: c.cleanup(ctx, customerID),
			Err:             err,
		}
	}
	created.BookingID = bookingID
	metrics.ObserveBookingCreated("", nil)

	c.logger.Debug().
		Str("customer", customerID).
		Str("booking", bookingID).
		Str("resource", plan.ResourceID).
		Time("start", plan.Start).
		Msg("booking created")

	state, err := Load(ctx, c.store, plan.Date, plan.Layout)
	if err != nil {
		return nil, created, err
	}
	return state, created, nil
}

// Create is Prepare followed by Run.
func (c *Creator) Create(ctx context.Context, state *DayState, req CreateRequest) (*DayState, Created, error) {
	plan, err := Prepare(state, req)
	if err != nil {
		return nil, Created{}, err
	}
	return c.Run(ctx, plan)
}

func (c *Creator) cleanup(ctx context.Context, customerID string) bool {
	if !c.orphanCleanup {
		return false
	}
	remover, ok := c.store.(booking.CustomerRemover)
	if !ok {
		return false
	}
	if err := remover.DeleteCustomer(ctx, customerID); err != nil && !errors.Is(err, booking.ErrNotFound) {
		c.logger.Debug().Err(err).Str("customer", customerID).Msg("orphan cleanup failed")
		return false
	}
	return true
}
