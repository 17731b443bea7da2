package ui

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/salonboard/internal/config"
	"github.com/javiermolinar/salonboard/internal/logging"
	"github.com/javiermolinar/salonboard/internal/server"
)

// ErrServeRemote is returned when serve is pointed at another server.
var ErrServeRemote = errors.New("serve needs a sqlite or postgres store, not http")

func (a *App) serveCmd() *cobra.Command {
	var addr string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the booking store over HTTP",
		Long: `Expose the configured database as a JSON API so that boards on other
machines can use it with storage.driver = "http".

Prometheus metrics are served on server.metrics_path.

Example:
  salonboard serve --addr :8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.config.Storage.Driver == config.DriverHTTP {
				return ErrServeRemote
			}
			logger, closer, err := logging.Setup(logging.Options{
				Console: true,
				Out:     cmd.ErrOrStderr(),
				Verbose: verbose || a.debug,
			})
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()
			a.logger = logger

			if err := a.ensureStore(); err != nil {
				return err
			}
			if addr == "" {
				addr = a.config.Server.Addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.store, server.Options{
				Addr:        addr,
				APIKey:      a.config.Storage.APIKey,
				MetricsPath: a.config.Server.MetricsPath,
				Logger:      logger,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every request")
	return cmd
}
