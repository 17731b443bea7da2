// Package metrics exposes Prometheus counters for the day board and its API.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	once sync.Once

	dayLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salonboard",
			Name:      "day_loads_total",
			Help:      "Count of day schedule loads by result.",
		},
		[]string{"result"},
	)

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salonboard",
			Name:      "bookings_created_total",
			Help:      "Count of booking creation attempts by result and failing step.",
		},
		[]string{"result", "step"},
	)

	repositionPersist = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salonboard",
			Name:      "reposition_persist_total",
			Help:      "Count of best-effort reposition writes by result.",
		},
		[]string{"result"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salonboard",
			Name:      "http_requests_total",
			Help:      "Count of API requests by route and status code.",
		},
		[]string{"route", "code"},
	)
)

// Register registers metrics with the default registry (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(dayLoads, bookingsCreated, repositionPersist, httpRequests)
	})
}

// Collectors returns all collectors, for callers using a private registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{dayLoads, bookingsCreated, repositionPersist, httpRequests}
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// ObserveDayLoad counts a day load.
func ObserveDayLoad(err error) {
	dayLoads.WithLabelValues(resultOf(err)).Inc()
}

// ObserveBookingCreated counts a creation attempt. step is empty on success.
func ObserveBookingCreated(step string, err error) {
	bookingsCreated.WithLabelValues(resultOf(err), step).Inc()
}

// ObserveReposition counts the outcome of a reposition write.
func ObserveReposition(err error) {
	repositionPersist.WithLabelValues(resultOf(err)).Inc()
}

// ObserveHTTPRequest counts a served API request.
func ObserveHTTPRequest(route, code string) {
	httpRequests.WithLabelValues(route, code).Inc()
}
