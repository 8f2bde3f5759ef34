// Package metrics holds the Prometheus collectors for the currency backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spendwise"

// Recorder groups the collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	rateLookups     *prometheus.CounterVec
	fetchFailures   *prometheus.CounterVec
	conversions     *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRecorder registers all collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		rateLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_lookups_total",
				Help:      "Rate table lookups by the source that answered them",
			},
			[]string{"source"},
		),
		fetchFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_fetch_failures_total",
				Help:      "Failed remote rate fetches by reason",
			},
			[]string{"reason"},
		),
		conversions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversions_total",
				Help:      "Conversions by the fallback tier that produced the result",
			},
			[]string{"tier"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),
	}
}

func (r *Recorder) RateLookup(source string) {
	if r == nil {
		return
	}
	r.rateLookups.WithLabelValues(source).Inc()
}

func (r *Recorder) FetchFailure(reason string) {
	if r == nil {
		return
	}
	r.fetchFailures.WithLabelValues(reason).Inc()
}

func (r *Recorder) Conversion(tier string) {
	if r == nil {
		return
	}
	r.conversions.WithLabelValues(tier).Inc()
}

// ObserveRequest records one served HTTP request.
func (r *Recorder) ObserveRequest(method, endpoint, status string, seconds float64) {
	if r == nil {
		return
	}
	r.requestsTotal.WithLabelValues(method, endpoint, status).Inc()
	r.requestDuration.WithLabelValues(method, endpoint, status).Observe(seconds)
}
