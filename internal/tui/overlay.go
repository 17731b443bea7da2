package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/salonboard/internal/tui/view"
)

// modalOverlay splices a modal over the board, centered.
type modalOverlay struct {
	bg lipgloss.Color
}

// Render draws content on top of base.
func (o modalOverlay) Render(base string, width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return base
	}
	return view.RenderModalOverlay(base, content, width, height, o.bg)
}
