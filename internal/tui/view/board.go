package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one row of one board column. Mark, when set, is drawn in
// MarkStyle at the left edge and the text fills the remaining width.
type Cell struct {
	Text      string
	Style     lipgloss.Style
	Mark      string
	MarkStyle lipgloss.Style
}

// BoardViewState holds everything needed to draw the day board: a header
// block of HeaderH rows followed by len(Gutter) body rows. Every column is
// ColW cells wide and separated from its neighbour by one cell.
type BoardViewState struct {
	GutterW int
	ColW    int
	HeaderH int

	Headers      []string
	HeaderStyles []lipgloss.Style

	Gutter      []string
	GutterStyle lipgloss.Style
	Columns     [][]Cell

	SeparatorStyle lipgloss.Style
	Width          int
	Bg             lipgloss.Color
}

// RenderBoard renders the header block and body rows.
func RenderBoard(state BoardViewState) string {
	if state.ColW <= 0 || len(state.Columns) == 0 {
		return ""
	}

	sep := state.SeparatorStyle.Render("│")
	gutterBlank := state.GutterStyle.Render(strings.Repeat(" ", state.GutterW))
	lines := make([]string, 0, state.HeaderH+len(state.Gutter))

	if state.HeaderH > 0 {
		var b strings.Builder
		b.WriteString(gutterBlank)
		for i, name := range state.Headers {
			style := lipgloss.NewStyle()
			if i < len(state.HeaderStyles) {
				style = state.HeaderStyles[i]
			}
			b.WriteString(sep)
			b.WriteString(style.Render(Center(name, state.ColW)))
		}
		lines = append(lines, b.String())

		rule := strings.Repeat("─", state.ColW)
		ruleLine := state.SeparatorStyle.Render(strings.Repeat("─", state.GutterW))
		for range state.Columns {
			ruleLine += state.SeparatorStyle.Render("┼" + rule)
		}
		for i := 1; i < state.HeaderH; i++ {
			lines = append(lines, ruleLine)
		}
	}

	for row, label := range state.Gutter {
		var b strings.Builder
		b.WriteString(state.GutterStyle.Render(Fit(label, state.GutterW)))
		for _, col := range state.Columns {
			b.WriteString(sep)
			if row < len(col) {
				b.WriteString(renderCell(col[row], state.ColW))
				continue
			}
			b.WriteString(strings.Repeat(" ", state.ColW))
		}
		lines = append(lines, b.String())
	}

	return PadLinesWithBackground(strings.Join(lines, "\n"), state.Width, len(lines), state.Bg)
}

func renderCell(c Cell, width int) string {
	if c.Mark == "" {
		return c.Style.Render(Fit(c.Text, width))
	}
	markW := lipgloss.Width(c.Mark)
	if markW >= width {
		return c.MarkStyle.Render(Fit(c.Mark, width))
	}
	return c.MarkStyle.Render(c.Mark) + c.Style.Render(Fit(c.Text, width-markW))
}
