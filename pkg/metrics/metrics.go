package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Scheduling metrics
	AvailabilityRequests *prometheus.CounterVec
	BookingAttempts      *prometheus.CounterVec
	AllocationLatency    prometheus.Histogram

	// Outbox metrics
	OutboxEventsProcessed   prometheus.Counter
	OutboxEventsFailed      prometheus.Counter
	OutboxProcessingLatency prometheus.Histogram
	OutboxQueueSize         prometheus.Gauge
	OutboxRetries           *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
}

// New creates and registers all application metrics. A nil registerer uses
// the default prometheus registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		AvailabilityRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduling",
			Name:      "availability_requests_total",
			Help:      "Total availability grid computations",
		}, []string{"service", "status"}),
		BookingAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduling",
			Name:      "booking_attempts_total",
			Help:      "Booking attempts by outcome and allocation strategy",
		}, []string{"service", "outcome", "strategy"}),
		AllocationLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduling",
			Name:      "allocation_duration_seconds",
			Help:      "Time spent allocating a booking inside the day lock",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),

		OutboxEventsProcessed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "events_processed_total",
			Help:      "Total number of successfully processed outbox events",
		}),
		OutboxEventsFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "events_failed_total",
			Help:      "Total number of failed outbox events",
		}),
		OutboxProcessingLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "processing_duration_seconds",
			Help:      "Time spent processing outbox events",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		OutboxQueueSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "queue_size",
			Help:      "Events picked up in the last poll",
		}),
		OutboxRetries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "retry_attempts_total",
			Help:      "Total number of retry attempts for outbox events",
		}, []string{"event_type"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) ObserveAvailability(service, status string) {
	if m == nil {
		return
	}
	m.AvailabilityRequests.WithLabelValues(service, status).Inc()
}

func (m *Metrics) ObserveBooking(service, outcome, strategy string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.BookingAttempts.WithLabelValues(service, outcome, strategy).Inc()
	m.AllocationLatency.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveOutboxBatch(size int) {
	if m == nil {
		return
	}
	m.OutboxQueueSize.Set(float64(size))
}

func (m *Metrics) ObserveOutboxEvent(eventType string, err error, retry bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.OutboxProcessingLatency.Observe(elapsed.Seconds())
	if err == nil {
		m.OutboxEventsProcessed.Inc()
		return
	}
	m.OutboxEventsFailed.Inc()
	if retry {
		m.OutboxRetries.WithLabelValues(eventType).Inc()
	}
}

func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
