package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/salonboard/internal/dateutil"
	"github.com/javiermolinar/salonboard/internal/schedule"
	"github.com/javiermolinar/salonboard/internal/tui/commands"
)

const statusDuration = 5 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil

	case commands.DayLoadedMsg:
		if !dateutil.SameDay(msg.Date, m.date) {
			m.logger.Debug().Time("date", msg.Date).Msg("dropping stale day load")
			return m, nil
		}
		m.loadErr = nil
		m.setState(msg.State)
		return m, nil

	case commands.LoadFailedMsg:
		return m.handleLoadFailed(msg)

	case commands.CreateResultMsg:
		return m.handleCreateResult(msg)

	case commands.PersistResultMsg:
		return m.handlePersistResult(msg)

	case commands.ErrMsg:
		m.logger.Debug().Err(msg.Err).Msg("command failed")
		return m, m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	// Cursor blink and other input plumbing for the form.
	if m.mode == ModeModal {
		var cmd tea.Cmd
		m.form.name, cmd = m.form.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setState installs a freshly loaded board. Any drag in progress belonged
// to the old board and is dropped.
func (m *Model) setState(state *schedule.DayState) {
	m.state = state
	m.drag.Attach(state)
	m.loading = false
	m.hasPreview = false
	if m.mode == ModeMove {
		m.mode = ModeNormal
	}
	m.relayout()
	m.clampCursor()
	m.ensureCursorVisible()
}

// handleLoadFailed keeps the board that is on screen and moves the date
// back to it. With nothing loaded yet, an empty board for the requested
// day is shown instead.
func (m Model) handleLoadFailed(msg commands.LoadFailedMsg) (tea.Model, tea.Cmd) {
	if !dateutil.SameDay(msg.Date, m.date) {
		m.logger.Debug().Time("date", msg.Date).Err(msg.Err).Msg("dropping stale load failure")
		return m, nil
	}
	m.logger.Debug().Time("date", msg.Date).Err(msg.Err).Msg("day load failed")

	m.loading = false
	m.loadErr = msg.Err
	if m.state == nil {
		m.setState(schedule.NewDayState(m.date, m.layout))
		return m, m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)
	}
	m.date = m.state.Date()
	return m, m.setStatus(fmt.Sprintf("Could not load %s: %v", msg.Date.Format("Mon 02 Jan"), msg.Err), true)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusMsg = text
	m.statusErr = isErr
	m.statusTime = m.now().Add(statusDuration)
	return commands.ClearStatusAfter(statusDuration)
}

func (m Model) handleCreateResult(msg commands.CreateResultMsg) (tea.Model, tea.Cmd) {
	// Esc while saving closes the form; the result then only reaches the
	// status line.
	inForm := m.mode == ModeModal && m.form.busy
	m.form.busy = false

	if msg.Err == nil {
		if inForm {
			m.closeModal()
		}
		if m.loading || !dateutil.SameDay(msg.State.Date(), m.date) {
			return m, m.setStatus("Booking created on "+msg.State.Date().Format("Mon 02 Jan"), false)
		}
		m.setState(msg.State)
		return m, m.setStatus("Booking created", false)
	}

	m.logger.Debug().
		Err(msg.Err).
		Str("customer", msg.Created.CustomerID).
		Str("booking", msg.Created.BookingID).
		Msg("create booking failed")

	// The insert went through but the reload did not: the board is stale.
	if msg.Created.BookingID != "" {
		if inForm {
			m.closeModal()
		}
		return m, m.setStatus(fmt.Sprintf("Booking created, but reload failed: %v (press r)", msg.Err), true)
	}

	if !inForm {
		return m, m.setStatus(fmt.Sprintf("Could not create booking: %v", msg.Err), true)
	}
	var ce *schedule.CreationError
	if errors.As(msg.Err, &ce) && ce.Step == schedule.StepBooking && ce.CustomerID != "" && !ce.CustomerRemoved {
		m.form.err = fmt.Sprintf("Booking failed; customer %s was kept: %v", ce.CustomerID, ce.Err)
	} else {
		m.form.err = msg.Err.Error()
	}
	return m, m.setStatus("Could not create booking", true)
}

// handlePersistResult applies the revert policy to a finished write. A
// failure without a revert is only logged.
func (m Model) handlePersistResult(msg commands.PersistResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err == nil {
		return m, nil
	}
	if m.drag.Revert(msg.Outcome) {
		return m, m.setStatus("Move could not be saved and was undone", true)
	}
	return m, nil
}

func (m *Model) relayout() {
	cols := 0
	if m.state != nil {
		cols = len(m.state.Resources())
	}
	m.lay = buildLayout(m.width, m.height, m.config.Schedule.HeaderHeight, cols)
	m.clampScroll()
}
