// Package timegrid maps wall-clock times of day onto a vertical slot axis.
//
// A Grid covers the half-open domain [DomainStart, DomainEnd) split into
// equal slots of Granularity minutes, each SlotHeight rows tall. Inputs
// outside the domain clamp to the first or last slot; the mapping never
// fails once the grid is built.
package timegrid

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/salonboard/internal/booking"
)

// ErrInvalidGrid is returned by New for inconsistent parameters.
var ErrInvalidGrid = errors.New("invalid time grid")

// Params configure a Grid.
type Params struct {
	DomainStart booking.Clock
	DomainEnd   booking.Clock
	Granularity int // minutes per slot
	SlotHeight  int // rows per slot
}

// Grid is an immutable time <-> offset mapping.
type Grid struct {
	start       int
	end         int
	granularity int
	slotHeight  int
	slotCount   int
}

// New validates p and returns a Grid.
func New(p Params) (Grid, error) {
	start, end := p.DomainStart.Minutes(), p.DomainEnd.Minutes()
	switch {
	case p.Granularity <= 0:
		return Grid{}, fmt.Errorf("%w: granularity must be positive, got %d", ErrInvalidGrid, p.Granularity)
	case p.SlotHeight <= 0:
		return Grid{}, fmt.Errorf("%w: slot height must be positive, got %d", ErrInvalidGrid, p.SlotHeight)
	case start < 0 || end > booking.MinutesPerDay:
		return Grid{}, fmt.Errorf("%w: domain must lie within one day", ErrInvalidGrid)
	case start >= end:
		return Grid{}, fmt.Errorf("%w: domain start %s must be before end %s", ErrInvalidGrid, p.DomainStart, p.DomainEnd)
	case (end-start)%p.Granularity != 0:
		return Grid{}, fmt.Errorf("%w: domain %s-%s is not a multiple of %d minutes", ErrInvalidGrid, p.DomainStart, p.DomainEnd, p.Granularity)
	}

	return Grid{
		start:       start,
		end:         end,
		granularity: p.Granularity,
		slotHeight:  p.SlotHeight,
		slotCount:   (end - start) / p.Granularity,
	}, nil
}

// MustNew is New that panics on error.
func MustNew(p Params) Grid {
	g, err := New(p)
	if err != nil {
		panic(err)
	}
	return g
}

// DomainStart returns the first covered time of day.
func (g Grid) DomainStart() booking.Clock { return booking.Clock(g.start) }

// DomainEnd returns the exclusive end of the covered range.
func (g Grid) DomainEnd() booking.Clock { return booking.Clock(g.end) }

// Granularity returns the slot size in minutes.
func (g Grid) Granularity() int { return g.granularity }

// SlotHeight returns the slot size in rows.
func (g Grid) SlotHeight() int { return g.slotHeight }

// SlotCount returns the number of slots in the domain.
func (g Grid) SlotCount() int { return g.slotCount }

// Height returns the total body height in rows.
func (g Grid) Height() int { return g.slotCount * g.slotHeight }

// Contains reports whether t lies in [DomainStart, DomainEnd).
func (g Grid) Contains(t booking.Clock) bool {
	m := t.Minutes()
	return m >= g.start && m < g.end
}

// ToSlotIndex returns the slot containing t, clamped to the domain.
func (g Grid) ToSlotIndex(t booking.Clock) int {
	return g.clampSlot(floorDiv(t.Minutes()-g.start, g.granularity))
}

// ToPixelOffset returns the top row of the slot containing t.
func (g Grid) ToPixelOffset(t booking.Clock) int {
	return g.ToSlotIndex(t) * g.slotHeight
}

// FromPixelOffset returns the start time of the slot at row y.
// Rows above the body map to the first slot and rows below to the last.
func (g Grid) FromPixelOffset(y int) booking.Clock {
	slot := g.clampSlot(floorDiv(y, g.slotHeight))
	return booking.Clock(g.start + g.granularity*slot)
}

// SlotStart returns the start time of slot i, clamped to the domain.
func (g Grid) SlotStart(i int) booking.Clock {
	return booking.Clock(g.start + g.granularity*g.clampSlot(i))
}

// Snap rounds t down to its slot boundary, clamping into the domain.
func (g Grid) Snap(t booking.Clock) booking.Clock {
	return g.SlotStart(g.ToSlotIndex(t))
}

// SpanRows returns the height in rows of a duration, proportional to
// slotHeight per granularity minutes. Sub-slot durations round down but
// never below one row.
func (g Grid) SpanRows(durationMinutes int) int {
	rows := durationMinutes * g.slotHeight / g.granularity
	if rows < 1 {
		return 1
	}
	return rows
}

func (g Grid) clampSlot(i int) int {
	if i < 0 {
		return 0
	}
	if i > g.slotCount-1 {
		return g.slotCount - 1
	}
	return i
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
