package ui

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/schedule"
)

// PrintOpts configures agenda printing.
type PrintOpts struct {
	Verbose      bool // Show full names without truncation
	MaxNameWidth int  // Maximum customer name width (0 = auto)
}

// CalcMaxNameWidth calculates the maximum customer name width.
func (o PrintOpts) CalcMaxNameWidth(defaultWidth int) int {
	if o.MaxNameWidth > 0 {
		return o.MaxNameWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// "    HH:MM-HH:MM  " plus "  service  Xh Ym"
	available := termWidth() - 17 - 30
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintAgenda writes the day grouped by resource, bookings in start order.
func PrintAgenda(w io.Writer, state *schedule.DayState, opts PrintOpts) {
	nameWidth := opts.CalcMaxNameWidth(24)
	st := state.Stats()

	for i, res := range state.Resources() {
		bookings := sortedBookings(state.BookingsForResource(i))
		fmt.Fprintf(w, "%s %s\n", formatResource(res.DisplayName),
			formatMuted(fmt.Sprintf("(%d, %s)", len(bookings), FormatDuration(st.PerResource[i]))))
		if len(bookings) == 0 {
			fmt.Fprintf(w, "    %s\n", formatMuted("no bookings"))
		}
		for _, b := range bookings {
			PrintBookingRow(w, b, nameWidth)
		}
		fmt.Fprintln(w)
	}
}

// PrintBookingRow prints a single booking row with consistent formatting.
func PrintBookingRow(w io.Writer, b *booking.Booking, nameWidth int) {
	name := truncate(b.CustomerDisplayName, nameWidth)
	span := b.Start.String() + "-" + b.End().String()
	fmt.Fprintf(w, "    %s  %-*s  %s  %s  %s\n",
		formatTime(span), nameWidth, name,
		formatMuted(b.ID), b.ServiceName,
		formatMuted(FormatDuration(b.DurationMinutes)))
}

// PrintStats prints the stats summary line.
func PrintStats(w io.Writer, st schedule.Stats, resources int) {
	fmt.Fprintf(w, "%s | %s | %d resources\n",
		formatStats(fmt.Sprintf("%d bookings", st.Bookings)),
		formatStats(FormatDuration(st.BookedMinutes)+" booked"),
		resources)
}

// FormatDuration formats minutes as "Xh Ym".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func sortedBookings(in []*booking.Booking) []*booking.Booking {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b *booking.Booking) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return out
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// findResource resolves a resource by id or display name, ignoring case.
func findResource(state *schedule.DayState, key string) (int, error) {
	for i, r := range state.Resources() {
		if r.ID == key || strings.EqualFold(r.DisplayName, key) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", schedule.ErrInvalidResource, key)
}

// findService resolves a service by id or name, ignoring case.
func findService(state *schedule.DayState, key string) (int, error) {
	for i, s := range state.Services() {
		if s.ID == key || strings.EqualFold(s.Name, key) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", schedule.ErrInvalidService, key)
}
