package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{name: "first and last", input: "Anna Muster", wantFirst: "Anna", wantLast: "Muster"},
		{name: "single word", input: "Cher", wantFirst: "Cher", wantLast: ""},
		{name: "split at first space only", input: "Anna Maria von Muster", wantFirst: "Anna", wantLast: "Maria von Muster"},
		{name: "surrounding whitespace", input: "  Anna   Muster  ", wantFirst: "Anna", wantLast: "Muster"},
		{name: "tab separator", input: "Anna\tMuster", wantFirst: "Anna", wantLast: "Muster"},
		{name: "no-break space", input: "Anna\u00a0Muster", wantFirst: "Anna", wantLast: "Muster"},
		{name: "ideographic space", input: "Anna\u3000Muster", wantFirst: "Anna", wantLast: "Muster"},
		{name: "empty", input: "", wantFirst: "", wantLast: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitName(tt.input)
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)", tt.input, first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestJoinName(t *testing.T) {
	if got := JoinName("Anna", "Muster"); got != "Anna Muster" {
		t.Errorf("JoinName() = %q", got)
	}
	if got := JoinName("Cher", ""); got != "Cher" {
		t.Errorf("JoinName() with empty last = %q", got)
	}
}

func TestValidColor(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"#fff", true},
		{"#A1B2C3", true},
		{"fff", false},
		{"#ffff", false},
		{"#gggggg", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidColor(tt.input); got != tt.want {
			t.Errorf("ValidColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Status("done").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestBookingEnd(t *testing.T) {
	b := &Booking{Start: MustClock("14:00"), DurationMinutes: 45}
	if got := b.End().String(); got != "14:45" {
		t.Errorf("End() = %s, want 14:45", got)
	}
}

func TestResourceRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     ResourceRecord
		wantErr error
	}{
		{name: "valid", rec: ResourceRecord{ID: "r1", DisplayName: "Mia"}},
		{name: "valid with color", rec: ResourceRecord{ID: "r1", DisplayName: "Mia", ColorHex: "#ff00aa"}},
		{name: "missing id", rec: ResourceRecord{DisplayName: "Mia"}, wantErr: ErrEmptyID},
		{name: "missing name", rec: ResourceRecord{ID: "r1"}, wantErr: ErrEmptyName},
		{name: "bad color", rec: ResourceRecord{ID: "r1", DisplayName: "Mia", ColorHex: "red"}, wantErr: ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestServiceRecordValidate(t *testing.T) {
	price := decimal.RequireFromString("35.00")
	tests := []struct {
		name    string
		rec     ServiceRecord
		wantErr error
	}{
		{name: "valid", rec: ServiceRecord{ID: "s1", Name: "Cut", Price: price, DurationMinutes: 30}},
		{name: "free service", rec: ServiceRecord{ID: "s1", Name: "Consult", DurationMinutes: 15}},
		{name: "missing id", rec: ServiceRecord{Name: "Cut", DurationMinutes: 30}, wantErr: ErrEmptyID},
		{name: "missing name", rec: ServiceRecord{ID: "s1", DurationMinutes: 30}, wantErr: ErrEmptyName},
		{name: "zero duration", rec: ServiceRecord{ID: "s1", Name: "Cut"}, wantErr: ErrInvalidDuration},
		{name: "negative price", rec: ServiceRecord{ID: "s1", Name: "Cut", DurationMinutes: 30, Price: price.Neg()}, wantErr: ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookingRecordValidate(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	valid := BookingRecord{ID: "b1", ResourceID: "r1", Start: start, DurationMinutes: 30}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noResource := valid
	noResource.ResourceID = ""
	if err := noResource.Validate(); !errors.Is(err, ErrEmptyID) {
		t.Errorf("missing resource: got %v", err)
	}

	noStart := valid
	noStart.Start = time.Time{}
	if err := noStart.Validate(); !errors.Is(err, ErrMissingStart) {
		t.Errorf("missing start: got %v", err)
	}

	noDuration := valid
	noDuration.DurationMinutes = 0
	if err := noDuration.Validate(); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("missing duration: got %v", err)
	}
}

func TestNewBookingValidate(t *testing.T) {
	base := NewBooking{
		CustomerID:      "c1",
		ResourceID:      "r1",
		ServiceID:       "s1",
		Start:           time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local),
		DurationMinutes: 45,
		Price:           decimal.RequireFromString("40"),
		Status:          StatusPending,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	badStatus := base
	badStatus.Status = "maybe"
	if err := badStatus.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("bad status: got %v", err)
	}

	noCustomer := base
	noCustomer.CustomerID = ""
	if err := noCustomer.Validate(); !errors.Is(err, ErrEmptyID) {
		t.Errorf("missing customer: got %v", err)
	}
}
