package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/salonboard/internal/schedule"
	"github.com/javiermolinar/salonboard/internal/tui/commands"
)

// handleMouseMsg handles wheel scrolling and drag and drop of cards.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state == nil || m.mode == ModeModal {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll -= m.state.Grid().SlotHeight()
		m.clampScroll()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scroll += m.state.Grid().SlotHeight()
		m.clampScroll()
		return m, nil
	}

	if m.mode != ModeNormal {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return m.mousePress(msg)
		}
	case tea.MouseActionMotion:
		if m.drag.IsDragging() {
			m.preview, m.hasPreview = m.drag.Preview(m.dropAt(msg))
			m.dragMoved = true
		}
	case tea.MouseActionRelease:
		if m.drag.IsDragging() {
			return m.mouseRelease(msg)
		}
	}
	return m, nil
}

func (m Model) mousePress(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	col := m.lay.ColumnAt(msg.X)
	if col < 0 || !m.lay.InBody(msg.Y) || m.loading {
		return m, nil
	}
	row := m.lay.RowAt(msg.Y, m.scroll)
	g := m.state.Grid()
	if row >= g.Height() {
		return m, nil
	}

	m.cursor = Position{Column: col, Slot: row / g.SlotHeight()}
	m.clampCursor()

	b := m.state.BookingAtRow(col, row)
	if b == nil {
		return m, nil
	}
	if err := m.drag.Grab(b.ID); err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.grabOffset = row - g.ToPixelOffset(b.Start)
	m.dragMoved = false
	m.hasPreview = false
	return m, nil
}

// mouseRelease drops the held card. A press and release with no motion
// in between is a click and leaves the card where it was.
func (m Model) mouseRelease(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.hasPreview = false
	if !m.dragMoved {
		m.drag.Cancel()
		return m, nil
	}
	m.dragMoved = false

	out, err := m.drag.Drop(context.Background(), m.dropAt(msg))
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	m.cursor = Position{
		Column: out.To.ResourceIndex,
		Slot:   m.state.Grid().ToSlotIndex(out.To.Start),
	}
	m.ensureCursorVisible()
	return m, commands.WaitPersist(out)
}

// dropAt maps the pointer to a drop so that the card's top, not the
// pointer, lands on the target row.
func (m Model) dropAt(msg tea.MouseMsg) schedule.Drop {
	d := m.lay.DropAt(msg.X, msg.Y, m.scroll)
	d.Y -= m.grabOffset
	return d
}

func (m *Model) clampCursor() {
	if m.state == nil {
		m.cursor = Position{}
		return
	}
	cols := len(m.state.Resources())
	slots := m.state.Grid().SlotCount()
	m.cursor.Column = min(max(0, m.cursor.Column), max(0, cols-1))
	m.cursor.Slot = min(max(0, m.cursor.Slot), max(0, slots-1))
}

// ensureCursorVisible scrolls the body so the cursor slot is on screen.
func (m *Model) ensureCursorVisible() {
	if m.state == nil || m.lay.BodyH <= 0 {
		return
	}
	sh := m.state.Grid().SlotHeight()
	top := m.cursor.Slot * sh
	bottom := top + sh
	if top < m.scroll {
		m.scroll = top
	}
	if bottom > m.scroll+m.lay.BodyH {
		m.scroll = bottom - m.lay.BodyH
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.state == nil {
		m.scroll = 0
		return
	}
	maxScroll := max(0, m.state.Grid().Height()-m.lay.BodyH)
	m.scroll = min(max(0, m.scroll), maxScroll)
}
