package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/config"
	"github.com/javiermolinar/salonboard/internal/schedule"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{600, "10h"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Ana Lopez", 20); got != "Ana Lopez" {
		t.Errorf("got %q", got)
	}
	if got := truncate("Maria Fernanda Lopez", 10); got != "Maria F..." {
		t.Errorf("got %q", got)
	}
}

// seededApp returns an App on a fresh SQLite store with the test roster
// and one booking for Ana with Mia at 09:00 on the returned day.
func seededApp(t *testing.T) (*App, time.Time, string) {
	t.Helper()
	ctx := context.Background()
	store := newTestStore(t)
	roster, err := readRoster(writeRoster(t, testRoster))
	if err != nil {
		t.Fatalf("readRoster failed: %v", err)
	}
	if _, _, err := importRoster(ctx, store, roster); err != nil {
		t.Fatalf("importRoster failed: %v", err)
	}

	cfg := config.Default()
	cfg.Schedule.DomainStart = "09:00"
	cfg.Schedule.DomainEnd = "18:00"
	a := NewApp(cfg)
	a.store = store
	a.closer = store

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	state, err := a.loadDay(ctx, date)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cut, err := findService(state, "cut")
	if err != nil {
		t.Fatalf("findService: %v", err)
	}
	_, created, err := newCreator(a).Create(ctx, state, schedule.CreateRequest{
		ResourceIndex: 0,
		ServiceIndex:  cut,
		Time:          booking.MustClock("09:00"),
		CustomerName:  "Ana Lopez",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return a, date, created.BookingID
}

func TestPrintAgenda(t *testing.T) {
	DisableColor()
	defer EnableColor()

	a, date, id := seededApp(t)
	state, err := a.loadDay(context.Background(), date)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var buf bytes.Buffer
	PrintAgenda(&buf, state, PrintOpts{})
	PrintStats(&buf, state.Stats(), len(state.Resources()))
	out := buf.String()

	for _, want := range []string{"Mia (1, 30m)", "09:00-09:30", "Ana Lopez", id, "Leo (0, 0m)", "no bookings", "1 bookings | 30m booked | 2 resources"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFindResourceAndService(t *testing.T) {
	a, date, _ := seededApp(t)
	state, err := a.loadDay(context.Background(), date)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if i, err := findResource(state, "LEO"); err != nil || i != 1 {
		t.Errorf("findResource by name = %d, %v", i, err)
	}
	if i, err := findResource(state, "mia"); err != nil || i != 0 {
		t.Errorf("findResource by id = %d, %v", i, err)
	}
	if _, err := findResource(state, "zoe"); !errors.Is(err, schedule.ErrInvalidResource) {
		t.Errorf("expected ErrInvalidResource, got %v", err)
	}
	// Services are listed by name.
	if i, err := findService(state, "colour"); err != nil || i != 0 {
		t.Errorf("findService = %d, %v", i, err)
	}
}

func TestReposition(t *testing.T) {
	DisableColor()
	defer EnableColor()

	a, date, id := seededApp(t)
	ctx := context.Background()
	state, err := a.loadDay(ctx, date)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var buf bytes.Buffer
	if err := a.reposition(ctx, &buf, state, id, 1, booking.MustClock("10:40")); err != nil {
		t.Fatalf("reposition failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Moved") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	reloaded, err := a.loadDay(ctx, date)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	b := reloaded.BookingByID(id)
	if b.ResourceIndex != 1 || b.Start != booking.MustClock("10:30") {
		t.Errorf("stored placement = column %d %s, want column 1 10:30", b.ResourceIndex, b.Start)
	}
}

func TestReposition_UnknownBooking(t *testing.T) {
	a, date, _ := seededApp(t)
	ctx := context.Background()
	state, err := a.loadDay(ctx, date)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	err = a.reposition(ctx, &bytes.Buffer{}, state, "nope", 0, booking.MustClock("09:00"))
	if !errors.Is(err, schedule.ErrUnknownBooking) {
		t.Errorf("expected ErrUnknownBooking, got %v", err)
	}
}

func TestLoadDay_InvalidSchedule(t *testing.T) {
	cfg := config.Default()
	cfg.Schedule.DomainEnd = "07:00"
	a := NewApp(cfg)

	if _, err := a.loadDay(context.Background(), time.Now()); err == nil {
		t.Fatal("expected an invalid schedule to be reported")
	}
}
