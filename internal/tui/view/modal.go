// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames and buttons.
type ModalStyles struct {
	ModalHeaderStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalStyle             lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalBodyStyle         lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.ModalHeaderStyle.Render(styles.ModalTitleStyle.Render(title)))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalFooterStyle.Render(footer))
	}

	return styles.ModalStyle.Render(b.String())
}

// RenderModalButtons renders a row of modal buttons with the first one active.
func RenderModalButtons(styles ModalStyles, labels ...string) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := styles.ModalButtonStyle
		if i == 0 {
			style = styles.ModalButtonActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, styles.ModalBodyStyle.Render(" "))
}

// BookingFormModel contains the fields needed to render the new booking form.
type BookingFormModel struct {
	DateLabel     string
	TimeRange     string
	ResourceLabel string
	NameValue     string
	NameStyle     lipgloss.Style
	Services      []string
	ActiveService int
	Durations     []string
	ActiveDur     int
	Focus         int // 0 name, 1 service, 2 duration
	Error         string
}

// BookingFormStyles groups styles for the booking form body.
type BookingFormStyles struct {
	TagStyle          lipgloss.Style
	BodyStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	OptionActive      lipgloss.Style
	OptionInactive    lipgloss.Style
	HintStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
}

// RenderBookingFormBody renders the modal body for the booking form.
func RenderBookingFormBody(model BookingFormModel, styles BookingFormStyles) string {
	var body strings.Builder
	sep := styles.BodyStyle.Render(" ")

	body.WriteString(styles.TagStyle.Render(model.DateLabel) + sep +
		styles.TagStyle.Render(model.TimeRange) + sep +
		styles.TagStyle.Render(model.ResourceLabel) + "\n\n")

	body.WriteString(styles.SectionTitleStyle.Render("CUSTOMER") + "\n")
	body.WriteString(model.NameStyle.Render(model.NameValue) + "\n\n")

	body.WriteString(styles.SectionTitleStyle.Render("SERVICE") + "\n")
	body.WriteString(renderOptions(model.Services, model.ActiveService, sep, styles))
	if model.Focus == 1 {
		body.WriteString(sep + styles.HintStyle.Render("Use left/right"))
	}
	body.WriteString("\n\n")

	body.WriteString(styles.SectionTitleStyle.Render("DURATION") + "\n")
	body.WriteString(renderOptions(model.Durations, model.ActiveDur, sep, styles))
	if model.Focus == 2 {
		body.WriteString(sep + styles.HintStyle.Render("Use left/right"))
	}
	body.WriteString("\n")

	if model.Error != "" {
		body.WriteString("\n" + styles.ErrorStyle.Render(model.Error) + "\n")
	}
	return body.String()
}

func renderOptions(labels []string, active int, sep string, styles BookingFormStyles) string {
	if len(labels) == 0 {
		return styles.HintStyle.Render("none")
	}
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		if i == active {
			parts = append(parts, styles.OptionActive.Render(label))
		} else {
			parts = append(parts, styles.OptionInactive.Render(label))
		}
	}
	return strings.Join(parts, sep)
}

// BookingFormFooter renders the footer for the booking form modal.
func BookingFormFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Enter] Book", "[Tab] Next field", "[Esc] Cancel")
}
