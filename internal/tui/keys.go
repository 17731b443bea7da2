package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/dateutil"
	"github.com/javiermolinar/salonboard/internal/schedule"
	"github.com/javiermolinar/salonboard/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug().
		Str("key", msg.String()).
		Str("mode", m.mode.String()).
		Msg("key")

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// String returns the mode name used in logs.
func (md Mode) String() string {
	switch md {
	case ModeMove:
		return "move"
	case ModeModal:
		return "modal"
	default:
		return "normal"
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.navigate(msg.String()) {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "[":
		return m.gotoDay(m.date.AddDate(0, 0, -1))
	case "]":
		return m.gotoDay(m.date.AddDate(0, 0, 1))
	case "t":
		return m.gotoDay(m.now())
	case "r":
		return m.gotoDay(m.date)
	}

	if m.state == nil || m.loading {
		return m, nil
	}

	switch msg.String() {
	case "n":
		return m.openModal()

	case "enter":
		if b := m.state.BookingAt(m.cursor.Column, m.cursor.Slot); b != nil {
			return m, m.setStatus(describeBooking(m.state, b), false)
		}
		return m.openModal()

	case "m":
		b := m.state.BookingAt(m.cursor.Column, m.cursor.Slot)
		if b == nil {
			return m, m.setStatus("No booking here", true)
		}
		if err := m.drag.Grab(b.ID); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		m.mode = ModeMove
		m.cursor.Slot = m.state.Grid().ToSlotIndex(b.Start)
		return m, nil

	case "c":
		return m, commands.CopyToClipboard(Agenda(m.state), "agenda")
	}

	return m, nil
}

// handleMoveKeys handles keys while a booking is grabbed from the keyboard.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.navigate(msg.String()) {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "m":
		m.drag.Cancel()
		m.mode = ModeNormal
		return m, nil

	case "enter":
		m.mode = ModeNormal
		// The cursor already names a slot, so the drop lands exactly on
		// its first row with no title or header rows above it.
		out, err := m.drag.Drop(context.Background(), schedule.Drop{
			Column: m.cursor.Column,
			Y:      m.cursor.Slot * m.state.Grid().SlotHeight(),
		})
		if err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		return m, commands.WaitPersist(out)
	}

	return m, nil
}

// handleModalKeys handles keys in the booking form.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.busy {
		if msg.String() == "esc" {
			m.closeModal()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil

	case "tab", "down":
		m.setFocus((m.form.focus + 1) % 3)
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.form.focus + 2) % 3)
		return m, nil

	case "enter":
		return m.submitForm()
	}

	switch m.form.focus {
	case 1:
		if n := len(m.state.Services()); n > 0 {
			switch msg.String() {
			case "left", "h":
				m.form.service = (m.form.service + n - 1) % n
			case "right", "l":
				m.form.service = (m.form.service + 1) % n
			}
		}
		return m, nil
	case 2:
		n := len(durationOptions)
		switch msg.String() {
		case "left", "h":
			m.form.duration = (m.form.duration + n - 1) % n
		case "right", "l":
			m.form.duration = (m.form.duration + 1) % n
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form.name, cmd = m.form.name.Update(msg)
	m.form.err = ""
	return m, cmd
}

func (m *Model) openModal() (tea.Model, tea.Cmd) {
	if len(m.state.Resources()) == 0 {
		return *m, m.setStatus("No resources to book", true)
	}
	m.mode = ModeModal
	m.form.at = m.cursor
	m.form.service = 0
	m.form.duration = max(0, slices.Index(durationOptions, m.config.Schedule.DefaultDuration))
	m.form.err = ""
	m.form.busy = false
	m.form.name.SetValue("")
	m.setFocus(0)
	return *m, nil
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.form.busy = false
	m.form.err = ""
	m.form.name.Blur()
}

func (m *Model) setFocus(focus int) {
	m.form.focus = focus
	if focus == 0 {
		m.form.name.Focus()
		return
	}
	m.form.name.Blur()
}

// submitForm validates the form on the UI goroutine and runs the insert
// off it. Validation failures never reach the store.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	plan, err := schedule.Prepare(m.state, m.formRequest())
	if err != nil {
		var ce *schedule.CreationError
		if errors.As(err, &ce) {
			err = ce.Err
		}
		m.form.err = err.Error()
		return m, nil
	}
	m.form.busy = true
	m.form.err = ""
	return m, commands.CreateBooking(m.creator, plan)
}

func (m Model) formRequest() schedule.CreateRequest {
	return schedule.CreateRequest{
		ResourceIndex:   m.form.at.Column,
		ServiceIndex:    m.form.service,
		Time:            m.state.Grid().SlotStart(m.form.at.Slot),
		DurationMinutes: durationOptions[m.form.duration],
		CustomerName:    m.form.name.Value(),
	}
}

// navigate moves the cursor for navigation keys and reports whether key
// was one.
func (m *Model) navigate(key string) bool {
	if m.state == nil {
		return false
	}
	slots := m.state.Grid().SlotCount()
	page := max(1, m.lay.BodyH/max(1, m.state.Grid().SlotHeight()))

	switch key {
	case "h", "left":
		m.cursor.Column--
	case "l", "right":
		m.cursor.Column++
	case "k", "up":
		m.cursor.Slot--
	case "j", "down":
		m.cursor.Slot++
	case "pgup", "ctrl+u":
		m.cursor.Slot -= page
	case "pgdown", "ctrl+d":
		m.cursor.Slot += page
	case "home", "g":
		m.cursor.Slot = 0
	case "end", "G":
		m.cursor.Slot = slots - 1
	default:
		return false
	}
	m.clampCursor()
	m.ensureCursorVisible()
	return true
}

func (m Model) gotoDay(date time.Time) (tea.Model, tea.Cmd) {
	if m.mode == ModeMove {
		m.drag.Cancel()
		m.mode = ModeNormal
	}
	m.date = dateutil.TruncateToDay(date)
	m.loading = true
	return m, commands.LoadDay(m.store, m.date, m.layout)
}

func describeBooking(state *schedule.DayState, b *booking.Booking) string {
	resource, _ := state.Resource(b.ResourceIndex)
	return fmt.Sprintf("%s  %s  %s with %s",
		b.CustomerDisplayName,
		b.ServiceName,
		formatRange(b),
		resource.DisplayName,
	)
}
