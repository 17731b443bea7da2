package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2025, 3, 10, 17, 45, 12, 99, time.UTC)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := TruncateToDay(in); !got.Equal(want) {
		t.Errorf("TruncateToDay() = %v, want %v", got, want)
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		minutes int
		want    time.Time
	}{
		{name: "midnight", minutes: 0, want: date},
		{name: "nine", minutes: 540, want: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
		{name: "two pm", minutes: 840, want: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)},
		{name: "odd minutes", minutes: 555, want: time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := At(date, tt.minutes); !got.Equal(tt.want) {
				t.Errorf("At(%d) = %v, want %v", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestAt_IgnoresTimeOfDayOnDate(t *testing.T) {
	date := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	got := At(date, 600)
	want := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("At() = %v, want %v", got, want)
	}
}

func TestMinutesOfDay(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 15, 0, 0, time.Local)
	if got := MinutesOfDay(in); got != 555 {
		t.Errorf("MinutesOfDay() = %d, want 555", got)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 3, 10, 1, 0, 0, 0, time.Local)
	b := time.Date(2025, 3, 10, 23, 0, 0, 0, time.Local)
	c := time.Date(2025, 3, 11, 1, 0, 0, 0, time.Local)
	if !SameDay(a, b) {
		t.Error("expected same day")
	}
	if SameDay(a, c) {
		t.Error("expected different days")
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Wednesday.
	ref := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "empty", input: "", want: day(15)},
		{name: "today", input: "today", want: day(15)},
		{name: "uppercase today", input: "TODAY", want: day(15)},
		{name: "tomorrow", input: "tomorrow", want: day(16)},
		{name: "yesterday", input: "yesterday", want: day(14)},
		{name: "next week", input: "next-week", want: day(22)},
		{name: "last week", input: "last-week", want: day(8)},
		{name: "friday", input: "friday", want: day(17)},
		{name: "same weekday jumps a week", input: "wednesday", want: day(22)},
		{name: "next monday", input: "next-monday", want: day(20)},
		{name: "last monday", input: "last-monday", want: day(13)},
		{name: "last wednesday", input: "last-wednesday", want: day(8)},
		{name: "absolute", input: "2025-01-20", want: day(20)},
		{name: "absolute past", input: "2025-01-02", want: day(2)},
		{name: "padded", input: "  tomorrow  ", want: day(16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseRelativeDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRelativeDate_Errors(t *testing.T) {
	ref := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	for _, input := range []string{"someday", "next-someday", "last-", "15/01/2025"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRelativeDate(input, ref)
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("ParseRelativeDate(%q) error = %v, want %v", input, err, ErrInvalidDateFormat)
			}
		})
	}
}
