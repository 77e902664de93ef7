// Package metrics registers the Prometheus instruments for the simulation
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every instrument the service emits. A nil *Metrics is valid
// and records nothing, which keeps tests free of registry wiring.
type Metrics struct {
	SimulationsTotal    *prometheus.CounterVec
	PricingDuration     prometheus.Histogram
	PricingRetries      prometheus.Counter
	QuoteCacheHits      prometheus.Counter
	QuoteCacheMisses    prometheus.Counter
	PersistenceFailures prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

// New creates and registers all instruments on the default registry.
func New() *Metrics {
	return &Metrics{
		SimulationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crediris_simulations_total",
			Help: "Simulations processed, by terminal outcome.",
		}, []string{"outcome"}),
		PricingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crediris_pricing_call_seconds",
			Help:    "Wall time of pricing partner calls, including retries.",
			Buckets: prometheus.DefBuckets,
		}),
		PricingRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crediris_pricing_retries_total",
			Help: "Pricing call attempts beyond the first.",
		}),
		QuoteCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crediris_quote_cache_hits_total",
			Help: "Pricing results served from the quote cache.",
		}),
		QuoteCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crediris_quote_cache_misses_total",
			Help: "Quote cache lookups that went on to the partner.",
		}),
		PersistenceFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crediris_persistence_failures_total",
			Help: "Simulation records that could not be written after pricing.",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crediris_http_request_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

func (m *Metrics) RecordSimulation(outcome string) {
	if m == nil {
		return
	}
	m.SimulationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObservePricingDuration(seconds float64) {
	if m == nil {
		return
	}
	m.PricingDuration.Observe(seconds)
}

func (m *Metrics) IncPricingRetry() {
	if m == nil {
		return
	}
	m.PricingRetries.Inc()
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.QuoteCacheHits.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.QuoteCacheMisses.Inc()
}

func (m *Metrics) IncPersistenceFailure() {
	if m == nil {
		return
	}
	m.PersistenceFailures.Inc()
}

func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, method, status).Observe(seconds)
}
