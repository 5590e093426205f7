// Package metrics provides Prometheus metrics for the assistant service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	QueriesTotal      *prometheus.CounterVec
	RetrievedPassages prometheus.Histogram
	ReloadsTotal      prometheus.Counter
	AgreementsTotal   prometheus.Counter
}

// New creates and registers all collectors on the given registerer.
// A nil registerer uses the default registry; tests pass a fresh one.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lawai_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lawai_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		QueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lawai_queries_total",
				Help: "Total number of legal queries by mode",
			},
			[]string{"mode", "status"},
		),
		RetrievedPassages: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lawai_retrieved_passages",
				Help:    "Number of passages retrieved per query",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
			},
		),
		ReloadsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lawai_index_reloads_total",
				Help: "Total number of index reloads",
			},
		),
		AgreementsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lawai_agreements_generated_total",
				Help: "Total number of agreements generated",
			},
		),
	}
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// Handler returns the /metrics HTTP handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
