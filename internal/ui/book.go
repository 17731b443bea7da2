package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/dateutil"
	"github.com/javiermolinar/salonboard/internal/schedule"
)

func (a *App) bookCmd() *cobra.Command {
	var (
		resource string
		service  string
		at       string
		duration int
		name     string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a customer into a slot",
		Long: `Create a customer and a pending booking, then print the result.

Resources and services may be given by id or by name.

Example:
  salonboard book --resource Mia --service Cut --time 10:30 --name "Ana Lopez"
  salonboard book -r res-1 -s svc-2 -t 14:00 --duration 90 -n Ben --date tomorrow`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			day, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			start, err := booking.ParseClock(at)
			if err != nil {
				return err
			}
			if duration == 0 {
				duration = a.config.Schedule.DefaultDuration
			}

			ctx := context.Background()
			state, err := a.loadDay(ctx, day)
			if err != nil {
				return err
			}
			resIdx, err := findResource(state, resource)
			if err != nil {
				return err
			}
			svcIdx, err := findService(state, service)
			if err != nil {
				return err
			}

			creator := newCreator(a)
			state, created, err := creator.Create(ctx, state, schedule.CreateRequest{
				ResourceIndex:   resIdx,
				ServiceIndex:    svcIdx,
				Time:            start,
				DurationMinutes: duration,
				CustomerName:    name,
			})
			if err != nil {
				var ce *schedule.CreationError
				if errors.As(err, &ce) && ce.CustomerID != "" && !ce.CustomerRemoved {
					fmt.Fprintln(cmd.ErrOrStderr(), formatWarn(fmt.Sprintf("customer %s was created but has no booking", ce.CustomerID)))
				}
				if created.BookingID != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Created booking %s, but the day could not be reloaded\n", created.BookingID)
				}
				return err
			}

			b := state.BookingByID(created.BookingID)
			if b == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Created booking %s\n", created.BookingID)
				return nil
			}
			res, _ := state.Resource(b.ResourceIndex)
			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s with %s at %s (%s)\n",
				b.CustomerDisplayName, formatResource(res.DisplayName),
				formatTime(b.Start.String()+"-"+b.End().String()), formatMuted(b.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&resource, "resource", "r", "", "Resource id or name")
	cmd.Flags().StringVarP(&service, "service", "s", "", "Service id or name")
	cmd.Flags().StringVarP(&at, "time", "t", "", "Start time (HH:MM)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (default: the service's)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Customer name")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day (YYYY-MM-DD, today, tomorrow...)")
	for _, f := range []string{"resource", "service", "time", "name"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newCreator(a *App) *schedule.Creator {
	opts := []schedule.CreatorOption{schedule.WithCreatorLogger(a.logger)}
	if a.config.Schedule.OrphanCleanup {
		opts = append(opts, schedule.WithOrphanCleanup())
	}
	return schedule.NewCreator(a.store, opts...)
}
