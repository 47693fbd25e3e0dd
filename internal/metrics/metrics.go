package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Contact store operations
	ContactOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_operations_total",
			Help: "Contact service calls by operation and outcome",
		},
		[]string{"op", "outcome"}, // create|list|get|update|delete, ok|invalid|not_found|error
	)
	ContactsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "contacts_stored",
			Help: "Number of stored contacts, as of the most recent list call",
		},
	)
)

// /metrics endpoint handler
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(HTTPLatency)
	prometheus.MustRegister(ContactOperations)
	prometheus.MustRegister(ContactsStored)
}
