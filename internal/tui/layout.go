package tui

import (
	"github.com/javiermolinar/salonboard/internal/schedule"
	"github.com/javiermolinar/salonboard/internal/tui/view"
)

// Screen rows, top to bottom: title, column header block, grid body,
// footer. Columns, left to right: time gutter, then one column per
// resource preceded by a one-cell separator.
const (
	titleHeight = 1
	gutterWidth = 6
	minColWidth = 6
	maxColWidth = 32
)

// LayoutCache stores dimensions derived from the window size and the
// number of resources.
type LayoutCache struct {
	Width   int
	Height  int
	HeaderH int
	BodyH   int
	FooterH int
	ColW    int
	Columns int
}

func buildLayout(width, height, headerH, columns int) LayoutCache {
	l := LayoutCache{
		Width:   width,
		Height:  height,
		HeaderH: max(1, headerH),
		FooterH: view.FooterHeight,
		Columns: columns,
	}
	l.BodyH = max(0, height-titleHeight-l.HeaderH-l.FooterH)
	if columns > 0 {
		l.ColW = (width-gutterWidth)/columns - 1
		l.ColW = min(maxColWidth, max(minColWidth, l.ColW))
	}
	return l
}

// BodyTop is the screen row of the first grid body row.
func (l LayoutCache) BodyTop() int {
	return titleHeight + l.HeaderH
}

// ColumnAt maps a screen x to a resource column, or -1 outside all columns.
func (l LayoutCache) ColumnAt(x int) int {
	if x < gutterWidth || l.ColW <= 0 {
		return -1
	}
	c := (x - gutterWidth) / (l.ColW + 1)
	if c >= l.Columns {
		return -1
	}
	return c
}

// InBody reports whether screen row y is inside the visible grid body.
func (l LayoutCache) InBody(y int) bool {
	return y >= l.BodyTop() && y < l.BodyTop()+l.BodyH
}

// DropAt converts a screen position into a drop. The grid body starts
// HeaderH rows below the column top and is scrolled by scroll rows, so the
// scroll offset is folded into Y.
func (l LayoutCache) DropAt(x, y, scroll int) schedule.Drop {
	return schedule.Drop{
		Column:       l.ColumnAt(x),
		Y:            y + scroll,
		ColumnTop:    titleHeight,
		HeaderHeight: l.HeaderH,
	}
}

// RowAt maps a screen y to a row offset within the grid body.
func (l LayoutCache) RowAt(y, scroll int) int {
	return y - l.BodyTop() + scroll
}
