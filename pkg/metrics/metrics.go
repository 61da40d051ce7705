package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPResponseSize     *prometheus.HistogramVec

	// Contact endpoint metrics
	ContactSubmissionsTotal *prometheus.CounterVec
	ValidationErrorsTotal   *prometheus.CounterVec
	CORSRejectionsTotal     prometheus.Counter

	// Mail transport metrics
	TransportRequestsTotal   *prometheus.CounterVec
	TransportRequestDuration *prometheus.HistogramVec
	TransportErrors          *prometheus.CounterVec
	TransportUp              *prometheus.GaugeVec

	// Application metrics
	PanicRecoveriesTotal prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		// HTTP request counter by endpoint and status code
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitemailer_http_requests_total",
				Help: "Total number of HTTP requests by endpoint and status code",
			},
			[]string{"endpoint", "method", "status"},
		),

		// HTTP request duration histogram by endpoint
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitemailer_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets, // [0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10]
			},
			[]string{"endpoint", "method"},
		),

		// HTTP requests currently in flight
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sitemailer_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
		),

		// HTTP response size histogram
		HTTPResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitemailer_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(16, 4, 8), // 16B to 256KB
			},
			[]string{"endpoint", "method"},
		),

		// Contact submissions by outcome: sent, invalid, failed, rejected_method
		ContactSubmissionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitemailer_contact_submissions_total",
				Help: "Total number of contact form submissions by outcome",
			},
			[]string{"status"},
		),

		// Form validation errors
		ValidationErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitemailer_validation_errors_total",
				Help: "Total number of contact form validation errors by field",
			},
			[]string{"field"},
		),

		// Cross-origin requests refused by the CORS allow-list
		CORSRejectionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sitemailer_cors_rejections_total",
				Help: "Total number of requests rejected by the CORS allow-list",
			},
		),

		// Mail transport request counter
		TransportRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitemailer_transport_requests_total",
				Help: "Total number of mail transport operations",
			},
			[]string{"transport", "operation", "status"},
		),

		// Mail transport request duration
		TransportRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitemailer_transport_request_duration_seconds",
				Help:    "Mail transport operation duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}, // Up to 30s timeout
			},
			[]string{"transport", "operation"},
		),

		// Mail transport errors
		TransportErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitemailer_transport_errors_total",
				Help: "Total number of mail transport errors",
			},
			[]string{"transport", "operation", "error_type"},
		),

		// Result of the last reachability probe (1 up, 0 down)
		TransportUp: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sitemailer_transport_up",
				Help: "Whether the last reachability probe of the mail transport succeeded",
			},
			[]string{"transport"},
		),

		// Panic recoveries
		PanicRecoveriesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sitemailer_panic_recoveries_total",
				Help: "Total number of panic recoveries in HTTP handlers",
			},
		),
	}
}

var defaultMetrics *Metrics

// Init initializes the default metrics instance
func Init() *Metrics {
	if defaultMetrics == nil {
		defaultMetrics = NewMetrics()
	}
	return defaultMetrics
}

// Get returns the default metrics instance
func Get() *Metrics {
	if defaultMetrics == nil {
		return Init()
	}
	return defaultMetrics
}
