// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderModalButtons_UsesModalBodySeparator(t *testing.T) {
	styles := ModalStyles{
		ModalBodyStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		ModalButtonStyle:       lipgloss.NewStyle(),
		ModalButtonActiveStyle: lipgloss.NewStyle(),
	}

	view := RenderModalButtons(styles, "[Enter] Book", "[Esc] Cancel")
	sep := styles.ModalBodyStyle.Render(" ")
	if !strings.Contains(view, sep) {
		t.Fatalf("expected modal button separator to use modal body style")
	}
}

func TestRenderBookingFormBody_IncludesSections(t *testing.T) {
	styles := BookingFormStyles{
		SectionTitleStyle: lipgloss.NewStyle().Bold(true),
	}
	model := BookingFormModel{
		DateLabel:     "Mon Mar 10",
		TimeRange:     "09:00-09:30",
		ResourceLabel: "Mia",
		NameValue:     "Ana",
		Services:      []string{"Cut", "Colour"},
		Durations:     []string{"default", "30m"},
	}

	body := RenderBookingFormBody(model, styles)
	for _, want := range []string{"CUSTOMER", "SERVICE", "DURATION", "Colour", "Mia", "09:00-09:30"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in form body", want)
		}
	}
	if strings.Contains(body, "Use left/right") {
		t.Error("hint should only show on a focused option row")
	}
}

func TestRenderBookingFormBody_ShowsError(t *testing.T) {
	body := RenderBookingFormBody(BookingFormModel{Error: "customer name is required"}, BookingFormStyles{})
	if !strings.Contains(body, "customer name is required") {
		t.Fatalf("expected error in body: %q", body)
	}
	if !strings.Contains(body, "none") {
		t.Fatalf("expected placeholder for empty service list: %q", body)
	}
}

func TestBookingFormFooter(t *testing.T) {
	footer := BookingFormFooter(ModalStyles{})
	if !strings.Contains(footer, "[Enter] Book") || !strings.Contains(footer, "[Esc] Cancel") {
		t.Fatalf("unexpected footer %q", footer)
	}
}
