package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/javiermolinar/salonboard/internal/booking"
)

func TestPlace(t *testing.T) {
	g := testLayout().Grid
	tests := []struct {
		name     string
		start    string
		duration int
		want     Rect
	}{
		{name: "first slot", start: "08:00", duration: 30, want: Rect{Top: 0, Height: 60}},
		{name: "snaps top to slot", start: "09:15", duration: 30, want: Rect{Top: 120, Height: 60}},
		{name: "long booking", start: "14:00", duration: 90, want: Rect{Top: 720, Height: 180}},
		{name: "sub-slot duration", start: "14:00", duration: 45, want: Rect{Top: 720, Height: 90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &booking.Booking{Start: booking.MustClock(tt.start), DurationMinutes: tt.duration}
			assert.Equal(t, tt.want, Place(g, b))
		})
	}
}

func TestPlace_IndependentOfColumn(t *testing.T) {
	g := testLayout().Grid
	b := &booking.Booking{Start: booking.MustClock("12:30"), DurationMinutes: 60}
	want := Place(g, b)
	for col := 0; col < 5; col++ {
		b.ResourceIndex = col
		assert.Equal(t, want, Place(g, b))
	}
	assert.Equal(t, g.ToPixelOffset(b.Start), want.Top)
	assert.Equal(t, (60/30)*60, want.Height)
	assert.Equal(t, want.Top+want.Height, want.Bottom())
}

func TestColorFor(t *testing.T) {
	palette := []string{"#a", "#b", "#c"}
	plain := booking.Resource{ID: "r"}
	explicit := booking.Resource{ID: "r", ColorHex: "#123456"}

	assert.Equal(t, "#a", ColorFor(plain, 0, palette))
	assert.Equal(t, "#c", ColorFor(plain, 2, palette))
	assert.Equal(t, "#b", ColorFor(plain, 4, palette))
	assert.Equal(t, "#123456", ColorFor(explicit, 4, palette))
	assert.Equal(t, DefaultPalette[1], ColorFor(plain, 1, nil))
}

func TestPalette(t *testing.T) {
	resources := []booking.Resource{{ID: "a"}, {ID: "b", ColorHex: "#fff"}, {ID: "c"}}
	assert.Equal(t, []string{"#1", "#fff", "#1"}, Palette(resources, []string{"#1", "#2"}))
}
