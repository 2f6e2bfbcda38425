// Package metrics registers the portal's Prometheus collectors and serves
// the scrape endpoint.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	authFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resultportal_auth_failures_total",
		Help: "Failed authentication attempts by audience (admin or student).",
	}, []string{"audience"})

	exportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resultportal_exports_generated_total",
		Help: "Markscard workbooks generated.",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resultportal_http_requests_total",
		Help: "HTTP requests by route pattern and status class.",
	}, []string{"route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resultportal_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	dbPingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resultportal_db_ping_duration_seconds",
		Help:    "MongoDB health-check ping latency.",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})
)

// IncAuthFailure counts one failed login or student lookup.
// audience is "admin" or "student".
func IncAuthFailure(audience string) {
	authFailures.WithLabelValues(audience).Inc()
}

// IncExportGenerated counts one generated markscard.
func IncExportGenerated() {
	exportsGenerated.Inc()
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(route, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, status).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveDBPing records one health-check ping round trip.
func ObserveDBPing(elapsed time.Duration) {
	dbPingDuration.Observe(elapsed.Seconds())
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
