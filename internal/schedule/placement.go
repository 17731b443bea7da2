package schedule

import (
	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/timegrid"
)

// DefaultPalette is used for resources without an explicit color.
var DefaultPalette = []string{
	"#8caaee", // blue
	"#a6d189", // green
	"#ef9f76", // peach
	"#ca9ee6", // mauve
	"#e5c890", // yellow
	"#81c8be", // teal
	"#f4b8e4", // pink
	"#e78284", // red
}

// Rect is a booking card's vertical extent within its column body.
type Rect struct {
	Top    int
	Height int
}

// Bottom returns the first row below the card.
func (r Rect) Bottom() int {
	return r.Top + r.Height
}

// Place computes the card rectangle of b. The result depends only on the
// booking's start and duration, never on the column it is drawn in.
func Place(g timegrid.Grid, b *booking.Booking) Rect {
	return Rect{
		Top:    g.ToPixelOffset(b.Start),
		Height: g.SpanRows(b.DurationMinutes),
	}
}

// ColorFor returns the resource's explicit color, or the palette entry
// for its load position.
func ColorFor(r booking.Resource, index int, palette []string) string {
	if r.ColorHex != "" {
		return r.ColorHex
	}
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	if index < 0 {
		index = -index
	}
	return palette[index%len(palette)]
}

// Palette derives the color of every resource in load order.
func Palette(resources []booking.Resource, fallback []string) []string {
	colors := make([]string, len(resources))
	for i, r := range resources {
		colors[i] = ColorFor(r, i, fallback)
	}
	return colors
}
