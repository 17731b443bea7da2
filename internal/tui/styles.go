// Package tui provides the terminal user interface for salonboard.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/salonboard/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorNow         lipgloss.Color
	colorDrag        lipgloss.Color
	colorWarning     lipgloss.Color

	// Title bar
	TitleStyle lipgloss.Style
	DateStyle  lipgloss.Style

	// Column headers; foreground is set per resource
	HeaderStyle lipgloss.Style

	// Time gutter
	TimeColumnStyle lipgloss.Style
	NowMarkerStyle  lipgloss.Style

	// Grid body
	EmptyCellStyle    lipgloss.Style
	EmptyStripeStyle  lipgloss.Style // every other slot, for readability
	CursorStyle       lipgloss.Style
	DragPreviewStyle  lipgloss.Style
	DragOriginStyle   lipgloss.Style // the grabbed card's old place
	KeyboardMoveStyle lipgloss.Style
	SeparatorStyle    lipgloss.Style

	// Footer
	StatsBarStyle    lipgloss.Style
	StatsAccentStyle lipgloss.Style
	StatusStyle      lipgloss.Style
	ErrorStyle       lipgloss.Style
	HelpStyle        lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalBackdropColor     lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalSectionTitleStyle lipgloss.Style
	ModalTagStyle          lipgloss.Style
	ModalInputStyle        lipgloss.Style
	ModalInputFocusedStyle lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalHintStyle         lipgloss.Style
	ModalErrorStyle        lipgloss.Style
	OptionActiveStyle      lipgloss.Style
	OptionInactiveStyle    lipgloss.Style

	// App container
	AppStyle lipgloss.Style

	cards map[string]cardStyles
}

// cardStyles are the styles of one resource color.
type cardStyles struct {
	Body   lipgloss.Style
	Alt    lipgloss.Style
	Stripe lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	palette := theme.NewPalette(t)
	s := &Styles{
		palette: palette,
		cards:   make(map[string]cardStyles),
	}

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorNow = palette.Now
	s.colorDrag = palette.Drag
	s.colorWarning = palette.Warning

	base := lipgloss.NewStyle().Background(s.colorBg)

	s.TitleStyle = base.
		Bold(true).
		Foreground(s.colorAccent)
	s.DateStyle = base.
		Foreground(s.colorFg)

	s.HeaderStyle = base.
		Bold(true).
		Foreground(s.colorFg)

	s.TimeColumnStyle = base.
		Foreground(s.colorFgMuted)
	s.NowMarkerStyle = base.
		Foreground(s.colorNow).
		Bold(true)

	s.EmptyCellStyle = base.
		Foreground(s.colorFgMuted)
	s.EmptyStripeStyle = lipgloss.NewStyle().
		Background(s.colorBgHighlight).
		Foreground(s.colorFgMuted)
	s.CursorStyle = lipgloss.NewStyle().
		Background(s.colorBgSelection).
		Foreground(s.colorAccent).
		Bold(true)
	s.DragPreviewStyle = lipgloss.NewStyle().
		Background(s.colorDrag).
		Foreground(palette.TextOnDrag).
		Bold(true)
	s.DragOriginStyle = lipgloss.NewStyle().
		Background(s.colorBgSelection).
		Foreground(s.colorFgMuted).
		Italic(true)
	s.KeyboardMoveStyle = lipgloss.NewStyle().
		Background(s.colorWarning).
		Foreground(palette.TextOnWarning).
		Bold(true)
	s.SeparatorStyle = base.
		Foreground(s.colorBgSelection)

	s.StatsBarStyle = base.
		Foreground(s.colorFg)
	s.StatsAccentStyle = base.
		Foreground(s.colorAccent).
		Bold(true)
	s.StatusStyle = base.
		Foreground(s.colorAccent).
		Bold(true)
	s.ErrorStyle = base.
		Foreground(s.colorWarning).
		Bold(true)
	s.HelpStyle = base.
		Foreground(s.colorFgMuted)

	// Modal styles - use high-contrast theme colors
	modal := palette.Modal
	modalBg := modal.Bg
	s.ModalBackdropColor = modal.Backdrop
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(64).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg).
		Padding(0, 1).
		Align(lipgloss.Center)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalSectionTitleStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Bold(true).
		PaddingLeft(1).
		Background(modalBg)

	s.ModalTagStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Panel).
		Bold(true).
		Padding(0, 1)

	s.ModalInputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(modal.Border).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(0, 1).
		Width(48)

	s.ModalInputFocusedStyle = s.ModalInputStyle.
		BorderForeground(modal.Highlight).
		Background(modal.Panel)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(modal.ReverseText).
		Background(modal.Highlight)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(modal.Panel).
		Foreground(modal.Text).
		Padding(0, 2)

	s.ModalButtonActiveStyle = s.ModalButtonStyle.
		Background(modal.Highlight).
		Foreground(modal.ReverseText).
		Underline(true)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalErrorStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(modalBg).
		Bold(true).
		PaddingLeft(1)

	s.OptionActiveStyle = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(modal.ReverseText).
		Bold(true).
		Padding(0, 1)

	s.OptionInactiveStyle = lipgloss.NewStyle().
		Background(modalBg).
		Foreground(modal.Muted).
		Padding(0, 1)

	// No padding: mouse coordinates map straight onto board rows and columns.
	s.AppStyle = base

	return s
}

// card returns the cached styles for a resource color.
func (s *Styles) card(hex string) cardStyles {
	if c, ok := s.cards[hex]; ok {
		return c
	}
	colors := s.palette.Card(hex)
	body := lipgloss.NewStyle().
		Background(colors.Bg).
		Foreground(colors.Text)
	c := cardStyles{
		Body:   body,
		Alt:    body.Background(colors.BgAlt),
		Stripe: lipgloss.NewStyle().Background(colors.Bg).Foreground(colors.Stripe),
	}
	s.cards[hex] = c
	return c
}

// headerStyle returns the column header style for a resource color.
func (s *Styles) headerStyle(hex string) lipgloss.Style {
	colors := s.palette.Card(hex)
	return s.HeaderStyle.Foreground(colors.Stripe)
}
