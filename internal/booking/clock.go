package booking

import (
	"fmt"
	"time"

	"github.com/javiermolinar/salonboard/internal/dateutil"
)

// MinutesPerDay is the number of minutes in a wall-clock day.
const MinutesPerDay = 24 * 60

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

// ParseClock parses "HH:MM" into a Clock.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTimeFormat
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// MustClock parses s and panics on error. For constants and tests.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(fmt.Sprintf("booking: invalid clock %q", s))
	}
	return c
}

// ClockOf returns the local wall-clock time of day of t.
func ClockOf(t time.Time) Clock {
	return Clock(dateutil.MinutesOfDay(t))
}

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int {
	return int(c)
}

// Add returns c shifted by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// On returns the absolute instant of c on date's day.
func (c Clock) On(date time.Time) time.Time {
	return dateutil.At(date, int(c))
}

// String formats the clock as "HH:MM", clamped to a single day.
func (c Clock) String() string {
	m := int(c)
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
