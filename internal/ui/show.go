package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/salonboard/internal/dateutil"
	"github.com/javiermolinar/salonboard/internal/schedule"
)

func (a *App) showCmd() *cobra.Command {
	var verbose bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Print a day's bookings per resource",
		Long: `Print one day's bookings grouped by resource, in start order.

The date defaults to today and accepts YYYY-MM-DD, today, tomorrow,
yesterday and weekday names.

Example:
  salonboard show
  salonboard show tomorrow`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureStore(); err != nil {
				return err
			}

			var input string
			if len(args) == 1 {
				input = args[0]
			}
			date, err := dateutil.ParseRelativeDate(input, time.Now())
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			state, err := a.loadDay(context.Background(), date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== %s ===\n\n", formatHeader(date.Format("Monday, January 2, 2006")))
			if len(state.Resources()) == 0 {
				fmt.Fprintln(out, "No resources configured. Use 'salonboard import' to add some.")
				return nil
			}
			PrintAgenda(out, state, PrintOpts{Verbose: verbose})
			PrintStats(out, state.Stats(), len(state.Resources()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full customer names")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// loadDay loads the board for date with the configured layout.
func (a *App) loadDay(ctx context.Context, date time.Time) (*schedule.DayState, error) {
	layout, err := a.layout()
	if err != nil {
		return nil, err
	}
	return schedule.Load(ctx, a.store, date, layout)
}

// layout is the board layout used by headless commands.
func (a *App) layout() (schedule.Layout, error) {
	grid, err := a.config.Grid()
	if err != nil {
		return schedule.Layout{}, err
	}
	palette := a.config.UI.Palette
	if len(palette) == 0 {
		palette = schedule.DefaultPalette
	}
	return schedule.Layout{Grid: grid, Palette: palette}, nil
}
