package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/schedule"
)

// Agenda renders the day as plain text, one block per resource with its
// bookings in start order.
func Agenda(state *schedule.DayState) string {
	var b strings.Builder
	b.WriteString(state.Date().Format("Monday 02 January 2006"))
	b.WriteString("\n")

	for i, res := range state.Resources() {
		b.WriteString("\n")
		b.WriteString(res.DisplayName)
		b.WriteString("\n")

		bookings := slices.Clone(state.BookingsForResource(i))
		slices.SortStableFunc(bookings, func(x, y *booking.Booking) int {
			return cmp.Compare(x.Start, y.Start)
		})
		if len(bookings) == 0 {
			b.WriteString("  (no bookings)\n")
			continue
		}
		for _, bk := range bookings {
			fmt.Fprintf(&b, "  %s  %s", formatRange(bk), bk.CustomerDisplayName)
			if bk.ServiceName != "" {
				fmt.Fprintf(&b, " (%s)", bk.ServiceName)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
