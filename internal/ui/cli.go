package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/config"
	"github.com/javiermolinar/salonboard/internal/dateutil"
	"github.com/javiermolinar/salonboard/internal/logging"
	"github.com/javiermolinar/salonboard/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	debug  bool   // Enable debug logging
	date   string // Day to open the board on

	// The store is opened on first use so that version and config work
	// without a reachable database.
	store  booking.Store
	closer io.Closer
	logger zerolog.Logger
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, logger: zerolog.Nop()}

	a.root = &cobra.Command{
		Use:   "salonboard",
		Short: "A day board for salon bookings",
		Long: `Salonboard shows one day of bookings as a timeline, one column per
stylist or chair.

Drag a booking with the mouse (or press m) to move it to another column
or time, and press n on an empty slot to book a customer.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runBoard()
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")
	a.root.Flags().StringVarP(&a.date, "date", "d", "", "Day to open (YYYY-MM-DD, today, tomorrow, monday...)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.bookCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "salonboard %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) runBoard() error {
	date, err := dateutil.ParseRelativeDate(a.date, time.Now())
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}

	var logPath string
	if a.debug {
		logPath = filepath.Join(os.TempDir(), fmt.Sprintf("salonboard-debug-%d.log", os.Getpid()))
	}
	logger, closer, err := logging.Setup(logging.Options{Debug: a.debug, Path: logPath})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	a.logger = logger

	if err := a.ensureStore(); err != nil {
		return err
	}

	err = tui.Run(a.store, a.config, tui.WithLogger(logger), tui.WithDate(date))
	if logPath != "" {
		fmt.Fprintf(os.Stderr, "debug log: %s\n", logPath)
	}
	return err
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store, if one was opened.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	a.store = nil
	return err
}
