// Package metrics exposes Prometheus instrumentation for the HTTP
// surface and the judging workflow. A custom registry keeps the
// scrape output limited to service metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type manager struct {
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	ratingsRecorded    prometheus.Counter
	submissionsCreated prometheus.Counter
	outboxPublished    prometheus.Counter
}

var registry = prometheus.NewRegistry()

var global = newManager(registry)

func newManager(reg prometheus.Registerer) *manager {
	auto := promauto.With(reg)
	return &manager{
		httpRequests: auto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "themis",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status_code"},
		),
		httpRequestDuration: auto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "themis",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		ratingsRecorded: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "themis",
			Subsystem: "judging",
			Name:      "ratings_recorded_total",
			Help:      "Total number of rating writes accepted, revisions included",
		}),
		submissionsCreated: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "themis",
			Subsystem: "judging",
			Name:      "submissions_created_total",
			Help:      "Total number of submissions registered",
		}),
		outboxPublished: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "themis",
			Subsystem: "judging",
			Name:      "outbox_published_total",
			Help:      "Total number of outbox events relayed to the bus",
		}),
	}
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(route, method, statusCode string) {
	global.httpRequests.WithLabelValues(route, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records how long one request took.
func RecordHTTPRequestDuration(route, method string, seconds float64) {
	global.httpRequestDuration.WithLabelValues(route, method).Observe(seconds)
}

// RecordRatingRecorded increments the accepted rating counter.
func RecordRatingRecorded() {
	global.ratingsRecorded.Inc()
}

// RecordSubmissionCreated increments the registered submission counter.
func RecordSubmissionCreated() {
	global.submissionsCreated.Inc()
}

// RecordOutboxPublished increments the relayed event counter.
func RecordOutboxPublished() {
	global.outboxPublished.Inc()
}

// Handler serves the scrape endpoint for the custom registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
