package integration

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/db"
	"github.com/javiermolinar/salonboard/internal/remote"
	"github.com/javiermolinar/salonboard/internal/schedule"
	"github.com/javiermolinar/salonboard/internal/server"
	"github.com/javiermolinar/salonboard/internal/timegrid"
)

const apiKey = "test-key"

// openRepo creates a fresh seeded database for each test with automatic cleanup.
func openRepo(t *testing.T) *db.Store {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	ctx := context.Background()
	for i, r := range []booking.ResourceRecord{
		{ID: "res-mia", DisplayName: "Mia", ColorHex: "#f5a97f"},
		{ID: "res-leo", DisplayName: "Leo"},
	} {
		if err := repo.UpsertResource(ctx, r, i); err != nil {
			t.Fatalf("failed to seed resource: %v", err)
		}
	}
	if err := repo.UpsertService(ctx, booking.ServiceRecord{
		ID: "svc-cut", Name: "Cut", Price: decimal.RequireFromString("32.50"), DurationMinutes: 45,
	}); err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}
	return repo
}

// openRemote serves repo over HTTP and returns a client for it.
func openRemote(t *testing.T, repo *db.Store) *remote.Client {
	t.Helper()
	srv := server.New(repo, server.Options{APIKey: apiKey, Logger: zerolog.Nop()})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return remote.NewClient(ts.URL, apiKey, 5*time.Second)
}

// mustParseDate parses a date string or fails the test.
func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", s, err)
	}
	return date
}

func testLayout() schedule.Layout {
	return schedule.Layout{
		Grid: timegrid.MustNew(timegrid.Params{
			DomainStart: booking.MustClock("08:00"),
			DomainEnd:   booking.MustClock("20:00"),
			Granularity: 15,
			SlotHeight:  1,
		}),
		Palette: schedule.DefaultPalette,
	}
}

// stores runs a test against the database directly and through the HTTP API.
func stores(t *testing.T, fn func(t *testing.T, store booking.Store)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, openRepo(t)) })
	t.Run("http", func(t *testing.T) { fn(t, openRemote(t, openRepo(t))) })
}

func TestCreateThenLoad(t *testing.T) {
	stores(t, func(t *testing.T, store booking.Store) {
		ctx := context.Background()
		date := mustParseDate(t, "2025-01-20")

		state, err := schedule.Load(ctx, store, date, testLayout())
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if len(state.Bookings()) != 0 {
			t.Fatalf("expected an empty day, got %d bookings", len(state.Bookings()))
		}

		state, created, err := schedule.NewCreator(store).Create(ctx, state, schedule.CreateRequest{
			ResourceIndex: 1,
			ServiceIndex:  0,
			Time:          booking.MustClock("10:15"),
			CustomerName:  "Ana Maria Lopez",
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		b := state.BookingByID(created.BookingID)
		if b == nil {
			t.Fatal("new booking missing after reload")
		}
		if b.ResourceIndex != 1 || b.Start != booking.MustClock("10:15") || b.DurationMinutes != 45 {
			t.Errorf("unexpected booking: %+v", b)
		}
		if b.CustomerDisplayName != "Ana Maria Lopez" || b.ServiceName != "Cut" {
			t.Errorf("unexpected names: %q / %q", b.CustomerDisplayName, b.ServiceName)
		}
	})
}

func TestDragPersists(t *testing.T) {
	stores(t, func(t *testing.T, store booking.Store) {
		ctx := context.Background()
		date := mustParseDate(t, "2025-01-21")
		layout := testLayout()

		state, err := schedule.Load(ctx, store, date, layout)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		state, created, err := schedule.NewCreator(store).Create(ctx, state, schedule.CreateRequest{
			Time: booking.MustClock("09:00"), CustomerName: "Ben",
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		ctrl := schedule.NewDragController(state, store)
		if err := ctrl.Grab(created.BookingID); err != nil {
			t.Fatalf("grab failed: %v", err)
		}
		// Header of 2 rows, column top at row 1; 14:30 is row 26 of the body.
		out, err := ctrl.Drop(ctx, schedule.Drop{Column: 1, Y: 1 + 2 + 26, ColumnTop: 1, HeaderHeight: 2})
		if err != nil {
			t.Fatalf("drop failed: %v", err)
		}
		if err := out.Persist.Wait(ctx); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		reloaded, err := schedule.Load(ctx, store, date, layout)
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		b := reloaded.BookingByID(created.BookingID)
		if b.ResourceIndex != 1 || b.Start != booking.MustClock("14:30") {
			t.Errorf("stored placement = column %d %s, want column 1 14:30", b.ResourceIndex, b.Start)
		}
	})
}

func TestDragToMissingBookingDrifts(t *testing.T) {
	repo := openRepo(t)
	client := openRemote(t, repo)
	ctx := context.Background()
	date := mustParseDate(t, "2025-01-22")

	state, err := schedule.Load(ctx, client, date, testLayout())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	state, created, err := schedule.NewCreator(client).Create(ctx, state, schedule.CreateRequest{
		Time: booking.MustClock("09:00"), CustomerName: "Cara",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// The row disappears from the store behind the board's back.
	if err := repo.UpdateBookingResourceAndTime(ctx, "missing", "res-mia", date); !errors.Is(err, booking.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a missing row, got %v", err)
	}

	ctrl := schedule.NewDragController(state, failingMoves{client}, schedule.WithRevertOnFailure())
	if err := ctrl.Grab(created.BookingID); err != nil {
		t.Fatalf("grab failed: %v", err)
	}
	out, err := ctrl.Drop(ctx, schedule.Drop{Column: 1, Y: 4})
	if err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	werr := out.Persist.Wait(ctx)
	if !errors.Is(werr, booking.ErrNotFound) {
		t.Fatalf("expected a 404 to map to ErrNotFound, got %v", werr)
	}
	if !ctrl.Revert(out) {
		t.Fatal("expected the move to be reverted")
	}
	if b := state.BookingByID(created.BookingID); b.ResourceIndex != 0 || b.Start != booking.MustClock("09:00") {
		t.Errorf("revert left the booking at column %d %s", b.ResourceIndex, b.Start)
	}
}

// failingMoves sends every move to a booking id the server does not know.
type failingMoves struct{ *remote.Client }

func (f failingMoves) UpdateBookingResourceAndTime(ctx context.Context, _, resourceID string, start time.Time) error {
	return f.Client.UpdateBookingResourceAndTime(ctx, "does-not-exist", resourceID, start)
}
