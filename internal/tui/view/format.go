// Package view provides rendering helpers for the TUI.
package view

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/javiermolinar/salonboard/internal/booking"
)

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

// FormatRange formats a start and duration as "HH:MM-HH:MM".
func FormatRange(start booking.Clock, minutes int) string {
	return start.String() + "-" + start.Add(minutes).String()
}

// FormatPrice renders a price with two decimals.
func FormatPrice(p decimal.Decimal) string {
	return p.StringFixed(2)
}
