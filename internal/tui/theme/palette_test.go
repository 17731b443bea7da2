package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func darkTheme() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Now:         "#777777",
		Warning:     "#888888",
	}
}

func TestPalette_CardShadesDark(t *testing.T) {
	palette := NewPalette(darkTheme())

	card := palette.Card("#8caaee")
	if card.Bg != lipgloss.Color(darkenColor("#8caaee")) {
		t.Fatalf("Bg = %q, want %q", card.Bg, darkenColor("#8caaee"))
	}
	if card.BgAlt != lipgloss.Color(alternateShade(darkenColor("#8caaee"), false)) {
		t.Fatalf("BgAlt = %q, want %q", card.BgAlt, alternateShade(darkenColor("#8caaee"), false))
	}
	if card.Stripe != lipgloss.Color("#8caaee") {
		t.Fatalf("Stripe = %q, want resource color", card.Stripe)
	}
	if card.Text != lipgloss.Color("#ffffff") {
		t.Fatalf("Text = %q, want light text on a dark card", card.Text)
	}
}

func TestPalette_CardShortHex(t *testing.T) {
	palette := NewPalette(darkTheme())
	if got := palette.Card("#f80").Stripe; got != lipgloss.Color("#ff8800") {
		t.Fatalf("Stripe = %q, want #ff8800", got)
	}
}

func TestPalette_CardInvalidFallsBackToAccent(t *testing.T) {
	palette := NewPalette(darkTheme())
	if got := palette.Card("red").Stripe; got != lipgloss.Color("#ff0000") {
		t.Fatalf("Stripe = %q, want accent", got)
	}
}

func TestPalette_DragFallsBackToAccent(t *testing.T) {
	palette := NewPalette(darkTheme())
	if palette.Drag != lipgloss.Color("#ff0000") {
		t.Fatalf("Drag = %q, want accent", palette.Drag)
	}
}

func TestNewPalette_ModalFallbacks(t *testing.T) {
	base := darkTheme()

	palette := NewPalette(base)
	if palette.Modal.Bg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("Modal.Bg = %q, want %q", palette.Modal.Bg, base.BgHighlight)
	}
	if palette.Modal.Border.Dark != base.Accent {
		t.Fatalf("Modal.Border.Dark = %q, want %q", palette.Modal.Border.Dark, base.Accent)
	}
	if palette.Modal.Backdrop != lipgloss.Color(base.BgSelection) {
		t.Fatalf("Modal.Backdrop = %q, want %q", palette.Modal.Backdrop, base.BgSelection)
	}
}

func TestPalette_LightThemeLightensCards(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Warning:     "#c2410c",
	}

	palette := NewPalette(base)
	card := palette.Card("#1d8a8a")
	if relativeLuminance(string(card.Bg)) <= relativeLuminance("#1d8a8a") {
		t.Fatalf("card luminance = %f, want greater than resource color", relativeLuminance(string(card.Bg)))
	}
	if card.Text != lipgloss.Color("#222222") {
		t.Fatalf("Text = %q, want dark text on a light card", card.Text)
	}
}

func TestDarkenColor_Floor(t *testing.T) {
	if got := darkenColor("#000000"); got != "#282828" {
		t.Fatalf("darkenColor(black) = %q, want #282828", got)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}
