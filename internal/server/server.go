// Package server exposes a booking store over HTTP for remote day boards.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/metrics"
)

// Options configure the HTTP server.
type Options struct {
	Addr        string
	APIKey      string // empty disables the key check
	MetricsPath string // empty disables the metrics endpoint
	Logger      zerolog.Logger
}

// Server serves the booking API.
type Server struct {
	store  booking.Store
	opts   Options
	log    zerolog.Logger
	router *mux.Router
}

// New builds a server over store and registers its routes.
func New(store booking.Store, opts Options) *Server {
	s := &Server{
		store:  store,
		opts:   opts,
		log:    opts.Logger.With().Str("component", "server").Logger(),
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(s.observe)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	if s.opts.MetricsPath != "" {
		metrics.Register()
		s.router.Handle(s.opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.requireAPIKey)
	api.HandleFunc("/resources", s.handleResources).Methods(http.MethodGet)
	api.HandleFunc("/services", s.handleServices).Methods(http.MethodGet)
	api.HandleFunc("/bookings", s.handleBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings", s.handleCreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/placement", s.handleMoveBooking).Methods(http.MethodPatch)
	api.HandleFunc("/customers", s.handleCreateCustomer).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}", s.handleDeleteCustomer).Methods(http.MethodDelete)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.opts.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
