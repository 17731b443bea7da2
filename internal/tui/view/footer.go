package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterHeight is the number of rows RenderFooter produces.
const FooterHeight = 3

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	InnerW      int
	StatsLine   string
	StatusText  string
	HelpText    string
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	Bg          lipgloss.Color
}

// RenderFooter renders the stats, status and help lines.
func RenderFooter(model FooterModel) string {
	s := footerLine(model.InnerW, lipgloss.NewStyle(), model.StatsLine) + "\n"
	s += footerLine(model.InnerW, model.StatusStyle, model.StatusText) + "\n"
	s += footerLine(model.InnerW, model.HelpStyle, model.HelpText)
	return PlaceBox(model.InnerW, FooterHeight, lipgloss.Bottom, s, model.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(0, width-frameW)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return style.Width(contentWidth).Render(content)
}
