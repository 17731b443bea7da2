package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/dateutil"
)

var badRequestErrs = []error{
	booking.ErrEmptyID,
	booking.ErrEmptyName,
	booking.ErrInvalidColor,
	booking.ErrInvalidDuration,
	booking.ErrNegativePrice,
	booking.ErrInvalidTimeFormat,
	booking.ErrMissingStart,
	booking.ErrInvalidStatus,
	dateutil.ErrInvalidDateFormat,
	booking.ErrConstraint,
}

func statusFor(err error) int {
	if errors.Is(err, booking.ErrNotFound) {
		return http.StatusNotFound
	}
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, code, "internal error")
		return
	}
	writeError(w, code, err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/v1/resources
func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	resources, err := s.store.FetchResources(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if resources == nil {
		resources = []booking.ResourceRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"resources": resources})
}

// GET /api/v1/services
func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.store.FetchServices(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if services == nil {
		services = []booking.ServiceRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

// GET /api/v1/bookings?date=YYYY-MM-DD
func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	date, err := dateutil.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}
	bookings, err := s.store.FetchBookingsForDate(r.Context(), date)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if bookings == nil {
		bookings = []booking.BookingRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

// POST /api/v1/customers
func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FirstName) == "" {
		writeError(w, http.StatusBadRequest, "first_name is required")
		return
	}
	id, err := s.store.CreateCustomer(r.Context(), req.FirstName, req.LastName)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// DELETE /api/v1/customers/{id}
func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	remover, ok := s.store.(booking.CustomerRemover)
	if !ok {
		writeError(w, http.StatusNotImplemented, "customer deletion not supported")
		return
	}
	if err := remover.DeleteCustomer(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/bookings
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req booking.NewBooking
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Status == "" {
		req.Status = booking.StatusPending
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.store.CreateBooking(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// PATCH /api/v1/bookings/{id}/placement
func (s *Server) handleMoveBooking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResourceID string    `json:"resource_id"`
		Start      time.Time `json:"start"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ResourceID == "" || req.Start.IsZero() {
		writeError(w, http.StatusBadRequest, "resource_id and start are required")
		return
	}
	if err := s.store.UpdateBookingResourceAndTime(r.Context(), mux.Vars(r)["id"], req.ResourceID, req.Start); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
