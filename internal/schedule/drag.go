package schedule

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/metrics"
)

// Phase is the drag controller's state.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Resolving
	Committed
	Reverted
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resolving:
		return "resolving"
	case Committed:
		return "committed"
	case Reverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// Repositioner is the store capability the controller needs.
type Repositioner interface {
	UpdateBookingResourceAndTime(ctx context.Context, bookingID, resourceID string, start time.Time) error
}

// Drop describes where a grabbed card was released. Y and ColumnTop are
// absolute rows; HeaderHeight is the column header above the grid body.
type Drop struct {
	Column       int
	Y            int
	ColumnTop    int
	HeaderHeight int
}

// LocalY translates the drop into the column body's frame.
func (d Drop) LocalY() int {
	return d.Y - d.ColumnTop - d.HeaderHeight
}

// Placement is a booking's column and start.
type Placement struct {
	ResourceIndex int
	Start         booking.Clock
}

// Outcome is the result of a committed drop.
type Outcome struct {
	BookingID string
	From      Placement
	To        Placement
	// Persist tracks the store write. It may be ignored.
	Persist *BestEffort
}

// DragOption configures a DragController.
type DragOption func(*DragController)

// WithRevertOnFailure makes a failed write eligible for Revert.
// Without it, failed writes leave the board diverged from the store.
func WithRevertOnFailure() DragOption {
	return func(c *DragController) { c.revertOnFailure = true }
}

// WithDragLogger sets the logger for persistence results.
func WithDragLogger(l zerolog.Logger) DragOption {
	return func(c *DragController) { c.logger = l }
}

// WithDriftHandler registers fn to receive failed writes. fn runs on the
// write's goroutine and must not touch the DayState.
func WithDriftHandler(fn func(*DriftError)) DragOption {
	return func(c *DragController) { c.onDrift = fn }
}

// DragController turns a grab and drop into a reassignment of a booking's
// resource and start time. It mutates the DayState synchronously and
// persists the change without waiting for the store.
type DragController struct {
	state *DayState
	store Repositioner

	phase   Phase
	grabbed *booking.Booking
	last    *Outcome

	revertOnFailure bool
	logger          zerolog.Logger
	onDrift         func(*DriftError)
}

// NewDragController returns an idle controller bound to state.
func NewDragController(state *DayState, store Repositioner, opts ...DragOption) *DragController {
	c := &DragController{
		state:  state,
		store:  store,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach rebinds the controller to a freshly loaded state and resets it.
func (c *DragController) Attach(state *DayState) {
	c.state = state
	c.phase = Idle
	c.grabbed = nil
	c.last = nil
}

// Phase returns the current state.
func (c *DragController) Phase() Phase { return c.phase }

// Grabbed returns the booking being dragged, or nil.
func (c *DragController) Grabbed() *booking.Booking { return c.grabbed }

// IsDragging reports whether a booking is currently held.
func (c *DragController) IsDragging() bool { return c.phase == Dragging }

// RevertOnFailure reports whether failed writes may be rolled back.
func (c *DragController) RevertOnFailure() bool { return c.revertOnFailure }

// Grab starts dragging the booking with the given id.
func (c *DragController) Grab(bookingID string) error {
	if c.phase == Dragging || c.phase == Resolving {
		return ErrDragInProgress
	}
	b := c.state.BookingByID(bookingID)
	if b == nil {
		return ErrUnknownBooking
	}
	c.grabbed = b
	c.phase = Dragging
	c.logger.Debug().Str("booking", b.ID).Msg("drag started")
	return nil
}

// Cancel abandons the current drag without touching the board.
func (c *DragController) Cancel() {
	if c.phase != Dragging {
		return
	}
	c.logger.Debug().Str("booking", c.grabbed.ID).Msg("drag cancelled")
	c.grabbed = nil
	c.phase = Idle
}

// Preview returns where the held booking would land for d, without
// committing. ok is false when no drag is active or the column is invalid.
func (c *DragController) Preview(d Drop) (Placement, bool) {
	if c.phase != Dragging {
		return Placement{}, false
	}
	if _, valid := c.state.Resource(d.Column); !valid {
		return Placement{}, false
	}
	return Placement{
		ResourceIndex: d.Column,
		Start:         c.state.Grid().FromPixelOffset(d.LocalY()),
	}, true
}

// Drop resolves the drop target, commits the new placement to the board
// and dispatches exactly one store write. The write is not awaited and
// its failure does not undo the local change.
func (c *DragController) Drop(ctx context.Context, d Drop) (*Outcome, error) {
	if c.phase != Dragging {
		return nil, ErrNotDragging
	}
	b := c.grabbed
	c.phase = Resolving

	resource, ok := c.state.Resource(d.Column)
	if !ok {
		c.grabbed = nil
		c.phase = Idle
		return nil, ErrInvalidColumn
	}
	start := c.state.Grid().FromPixelOffset(d.LocalY())

	out := &Outcome{
		BookingID: b.ID,
		From:      Placement{ResourceIndex: b.ResourceIndex, Start: b.Start},
		To:        Placement{ResourceIndex: d.Column, Start: start},
	}
	c.state.place(b, d.Column, start)
	c.phase = Committed
	c.grabbed = nil
	c.last = out

	absolute := start.On(c.state.Date())
	id := b.ID
	resourceID := resource.ID
	logger := c.logger
	onDrift := c.onDrift

	logger.Debug().
		Str("booking", id).
		Str("resource", resourceID).
		Str("start", start.String()).
		Msg("reposition committed")

	out.Persist = runBestEffort(ctx, func(ctx context.Context) error {
		return c.store.UpdateBookingResourceAndTime(ctx, id, resourceID, absolute)
	}, func(err error) {
		metrics.ObserveReposition(err)
		if err == nil {
			return
		}
		drift := &DriftError{BookingID: id, Err: err}
		logger.Debug().Err(drift).Msg("reposition write failed")
		if onDrift != nil {
			onDrift(drift)
		}
	})

	return out, nil
}

// Revert rolls out back to its previous placement after a failed write.
// It only applies when the controller was built WithRevertOnFailure, the
// write actually failed, and the booking has not been moved again since.
// It reports whether the board changed.
func (c *DragController) Revert(out *Outcome) bool {
	if !c.revertOnFailure || out == nil || out.Persist == nil {
		return false
	}
	if out.Persist.Err() == nil {
		return false
	}
	b := c.state.BookingByID(out.BookingID)
	if b == nil || b.ResourceIndex != out.To.ResourceIndex || b.Start != out.To.Start {
		return false
	}
	c.state.place(b, out.From.ResourceIndex, out.From.Start)
	if c.last == out {
		c.phase = Reverted
	}
	c.logger.Debug().Str("booking", b.ID).Msg("reposition reverted")
	return true
}
