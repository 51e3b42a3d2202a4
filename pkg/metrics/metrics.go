package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Doctor form metrics
	FormSubmissions *prometheus.CounterVec
	FormFieldErrors *prometheus.CounterVec

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// Broker metrics
	BrokerPublishes      *prometheus.CounterVec
	BrokerPublishLatency prometheus.Histogram

	// Cache metrics
	CacheLookups *prometheus.CounterVec
}

// NewMetrics creates all application metrics and registers them with reg.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer, namespace, subsystem string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FormSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "doctor_form_submissions_total",
			Help:      "Total number of doctor form submissions by outcome",
		}, []string{"outcome"}),
		FormFieldErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "doctor_form_field_errors_total",
			Help:      "Total number of doctor form validation errors by field",
		}, []string{"field"}),

		DatabaseOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		BrokerPublishes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "broker_publishes_total",
			Help:      "Total number of messages published to the broker",
		}, []string{"channel", "status"}),
		BrokerPublishLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "broker_publish_duration_seconds",
			Help:      "Duration of broker publishes",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5},
		}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_lookups_total",
			Help:      "Total number of cache lookups by result",
		}, []string{"cache", "result"}),
	}
}

// TrackDB starts timing a database operation. Call the returned func with
// the operation's error when it finishes. Safe on a nil *Metrics.
func (m *Metrics) TrackDB(operation string) func(error) {
	if m == nil {
		return func(error) {}
	}
	start := time.Now()
	return func(err error) {
		status := "success"
		if err != nil {
			status = "error"
		}
		m.DatabaseOperations.WithLabelValues(operation, status).Inc()
		m.DatabaseLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
