package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/salonboard/internal/booking"
)

func TestRenderBoard_Shape(t *testing.T) {
	state := BoardViewState{
		GutterW: 6,
		ColW:    8,
		HeaderH: 2,
		Headers: []string{"Mia", "Leo"},
		Gutter:  []string{"09:00", "", "09:30", ""},
		Columns: [][]Cell{
			{{Text: "Ana"}, {Text: "Cut"}, {}, {}},
			{{}, {}, {Text: "Bo"}, {}},
		},
	}

	out := RenderBoard(state)
	lines := strings.Split(out, "\n")
	if len(lines) != 2+4 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}
	wantW := 6 + 2*(1+8)
	for i, line := range lines {
		if w := lipgloss.Width(line); w != wantW {
			t.Errorf("line %d width = %d, want %d", i, w, wantW)
		}
	}
	if !strings.Contains(lines[0], "Mia") || !strings.Contains(lines[0], "Leo") {
		t.Errorf("header missing names: %q", lines[0])
	}
	if !strings.Contains(lines[2], "09:00") || !strings.Contains(lines[2], "Ana") {
		t.Errorf("first body row = %q", lines[2])
	}
	if !strings.Contains(lines[4], "Bo") {
		t.Errorf("third body row = %q", lines[4])
	}
}

func TestRenderBoard_NoColumns(t *testing.T) {
	if out := RenderBoard(BoardViewState{ColW: 8}); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestFitAndCenter(t *testing.T) {
	if got := Fit("abc", 5); got != "abc  " {
		t.Errorf("Fit pad = %q", got)
	}
	if got := Fit("abcdefgh", 4); lipgloss.Width(got) != 4 {
		t.Errorf("Fit truncate width = %d", lipgloss.Width(got))
	}
	if got := Center("ab", 6); got != "  ab  " {
		t.Errorf("Center = %q", got)
	}
	if got := Fit("x", 0); got != "" {
		t.Errorf("Fit zero = %q", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{30, "30m"},
		{60, "1h"},
		{90, "1h 30m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
	if got := FormatRange(booking.MustClock("09:30"), 45); got != "09:30-10:15" {
		t.Errorf("FormatRange = %q", got)
	}
}

func TestRenderFooter_Height(t *testing.T) {
	out := RenderFooter(FooterModel{InnerW: 30, StatsLine: "3 bookings", StatusText: "Moved", HelpText: "q quit"})
	if got := len(strings.Split(out, "\n")); got != FooterHeight {
		t.Fatalf("footer lines = %d, want %d", got, FooterHeight)
	}
	if !strings.Contains(out, "Moved") {
		t.Errorf("missing status in %q", out)
	}
}

type stubOverlay struct{ called bool }

func (s *stubOverlay) Render(base string, _, _ int, content string) string {
	s.called = true
	return base + content
}

func TestRender(t *testing.T) {
	if got := Render(ViewState{}); got != "Loading..." {
		t.Errorf("empty view = %q", got)
	}
	o := &stubOverlay{}
	got := Render(ViewState{Width: 10, Height: 2, BaseContent: "b", ModalContent: "m", ShowModal: true, Overlay: o})
	if !o.called || got != "bm" {
		t.Errorf("overlay not applied: %q", got)
	}
}

func TestRenderModalOverlay_KeepsSize(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 20)+"\n", 9) + strings.Repeat(".", 20)
	out := RenderModalOverlay(base, "hey\nyou", 20, 10, lipgloss.Color(""))
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.Contains(lines[4], "hey") || !strings.Contains(lines[5], "you") {
		t.Errorf("modal not centered: %q / %q", lines[4], lines[5])
	}
}

func TestRenderCell_Mark(t *testing.T) {
	got := renderCell(Cell{Text: "Ana", Mark: "▌"}, 6)
	if got != "▌Ana  " {
		t.Fatalf("renderCell = %q", got)
	}
	if w := lipgloss.Width(renderCell(Cell{Mark: "▌▌▌"}, 2)); w != 2 {
		t.Fatalf("oversized mark width = %d", w)
	}
}
