package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/dateutil"
	"github.com/javiermolinar/salonboard/internal/schedule"
)

func (a *App) moveCmd() *cobra.Command {
	var (
		resource string
		at       string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "move <booking-id>",
		Short: "Move a booking to another resource or time",
		Long: `Move a booking the same way dragging it on the board does: the time
snaps to the grid and exactly one write is sent to the store.

The command waits for the write and reports it if it failed.

Example:
  salonboard move 3f2a... --resource Leo --time 11:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			day, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			ctx := context.Background()
			state, err := a.loadDay(ctx, day)
			if err != nil {
				return err
			}

			b := state.BookingByID(args[0])
			if b == nil {
				return fmt.Errorf("%w: %s on %s", schedule.ErrUnknownBooking, args[0], dateutil.FormatDate(day))
			}
			column := b.ResourceIndex
			if resource != "" {
				if column, err = findResource(state, resource); err != nil {
					return err
				}
			}
			start := b.Start
			if at != "" {
				if start, err = booking.ParseClock(at); err != nil {
					return err
				}
			}

			return a.reposition(ctx, cmd.OutOrStdout(), state, b.ID, column, start)
		},
	}

	cmd.Flags().StringVarP(&resource, "resource", "r", "", "Target resource id or name (default: unchanged)")
	cmd.Flags().StringVarP(&at, "time", "t", "", "Target start time HH:MM (default: unchanged)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day the booking is on")
	return cmd
}

// reposition runs one drag from the command line: grab, drop on the
// target slot's first row, then wait for the write.
func (a *App) reposition(ctx context.Context, out io.Writer, state *schedule.DayState, id string, column int, start booking.Clock) error {
	opts := []schedule.DragOption{schedule.WithDragLogger(a.logger)}
	if a.config.Schedule.RevertOnFailure {
		opts = append(opts, schedule.WithRevertOnFailure())
	}
	ctrl := schedule.NewDragController(state, a.store, opts...)

	if err := ctrl.Grab(id); err != nil {
		return err
	}
	res, err := ctrl.Drop(ctx, schedule.Drop{
		Column: column,
		Y:      state.Grid().ToPixelOffset(start),
	})
	if err != nil {
		return err
	}

	werr := res.Persist.Wait(ctx)
	target, _ := state.Resource(res.To.ResourceIndex)
	if werr == nil {
		fmt.Fprintf(out, "Moved %s to %s at %s\n", id, formatResource(target.DisplayName), formatTime(res.To.Start.String()))
		return nil
	}

	if ctrl.Revert(res) {
		fmt.Fprintln(out, formatWarn("Move was not saved and has been undone"))
	} else {
		fmt.Fprintln(out, formatWarn("Move was not saved; the store still has the old placement"))
	}
	return &schedule.DriftError{BookingID: id, Err: werr}
}
