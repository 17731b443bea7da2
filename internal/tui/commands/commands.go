// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/dateutil"
	"github.com/javiermolinar/salonboard/internal/schedule"
)

// DayLoadedMsg is sent when a day has been (re)loaded. Date is the day
// that was requested.
type DayLoadedMsg struct {
	Date  time.Time
	State *schedule.DayState
}

// LoadFailedMsg is sent when loading the day at Date fails.
type LoadFailedMsg struct {
	Date time.Time
	Err  error
}

// CreateResultMsg is sent when the creation flow finishes. State is set on
// full success. Created carries whatever was inserted, even on failure.
type CreateResultMsg struct {
	State   *schedule.DayState
	Created schedule.Created
	Err     error
}

// PersistResultMsg is sent when a reposition write finishes.
type PersistResultMsg struct {
	Outcome *schedule.Outcome
	Err     error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadDay loads the board for date.
func LoadDay(store booking.Store, date time.Time, layout schedule.Layout) tea.Cmd {
	date = dateutil.TruncateToDay(date)
	return func() tea.Msg {
		state, err := schedule.Load(context.Background(), store, date, layout)
		if err != nil {
			return LoadFailedMsg{Date: date, Err: err}
		}
		return DayLoadedMsg{Date: date, State: state}
	}
}

// CreateBooking runs a prepared creation plan off the UI goroutine.
func CreateBooking(creator *schedule.Creator, plan schedule.CreatePlan) tea.Cmd {
	return func() tea.Msg {
		state, created, err := creator.Run(context.Background(), plan)
		return CreateResultMsg{State: state, Created: created, Err: err}
	}
}

// WaitPersist reports the outcome of a reposition write once it finishes.
// The board has already been updated; this only feeds status and revert.
func WaitPersist(out *schedule.Outcome) tea.Cmd {
	if out == nil || out.Persist == nil {
		return nil
	}
	return func() tea.Msg {
		<-out.Persist.Done()
		return PersistResultMsg{Outcome: out, Err: out.Persist.Err()}
	}
}

// CopyToClipboard copies text and reports the result as a status message.
func CopyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying %s: %w", what, err)}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Copied %s to clipboard", what)}
	}
}

// ClearStatusAfter schedules a ClearStatusMsg.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
