package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the livecounter service.
type Metrics struct {
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	AuditDropped     prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "livecounter_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds, by route, method and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "livecounter_requests_in_flight",
				Help: "Number of HTTP requests currently being served.",
			},
		),
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "livecounter_upstream_requests_total",
				Help: "Proxied lookups, by resource and outcome.",
			},
			[]string{"resource", "outcome"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "livecounter_upstream_request_duration_seconds",
				Help:    "Latency of forwarded requests, by resource.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resource"},
		),
		CacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "livecounter_cache_hits_total",
				Help: "Proxy responses served from the response cache.",
			},
		),
		CacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "livecounter_cache_misses_total",
				Help: "Proxy requests not found in the response cache.",
			},
		),
		AuditDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "livecounter_audit_dropped_total",
				Help: "Lookup audit records dropped because the queue was full.",
			},
		),
	}

	reg.MustRegister(
		m.RequestDuration,
		m.RequestsInFlight,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheHits,
		m.CacheMisses,
		m.AuditDropped,
	)
	return m
}
