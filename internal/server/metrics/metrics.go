// Package metrics holds the Prometheus instruments exposed at /metrics.
// Only aggregate counters are collected; nothing here identifies a user.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the notes server.
type Metrics struct {
	RequestCounter    *prometheus.CounterVec
	LoginCounter      *prometheus.CounterVec
	PermissionDenials *prometheus.CounterVec
}

// New registers and returns the metrics on the given registerer. Pass
// prometheus.DefaultRegisterer in production; tests use a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "notes",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "status"},
		),
		LoginCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "notes",
				Name:      "logins_total",
				Help:      "Total number of login attempts",
			},
			[]string{"outcome"},
		),
		PermissionDenials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "notes",
				Name:      "permission_denials_total",
				Help:      "Total number of denied permission checks",
			},
			[]string{"resource"},
		),
	}
}
