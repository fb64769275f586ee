// Package metrics exposes Prometheus collectors for registry fetches, cache
// behavior, search and the HTTP API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors. Each instance owns its registry so several
// facades can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	Fetches        *prometheus.CounterVec
	CacheHits      *prometheus.CounterVec
	Replacements   *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	Requests       *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dappregistry_fetches_total",
			Help: "Document fetches by document and origin (remote or snapshot)",
		}, []string{"document", "origin"}),
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dappregistry_cache_hits_total",
			Help: "Reads served from the in-memory document without a fetch",
		}, []string{"document"}),
		Replacements: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dappregistry_cache_replacements_total",
			Help: "Times a stale check found changed content and replaced the cached document",
		}, []string{"document"}),
		SearchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dappregistry_search_duration_seconds",
			Help:    "Duration of index searches",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"kind"}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dappregistry_http_requests_total",
			Help: "HTTP API requests by route and status code",
		}, []string{"route", "code"}),
	}
}

// ObserveFetch records a resolved fetch.
func (m *Metrics) ObserveFetch(document, origin string) {
	m.Fetches.WithLabelValues(document, origin).Inc()
}

// ObserveHit records a read served from memory.
func (m *Metrics) ObserveHit(document string) {
	m.CacheHits.WithLabelValues(document).Inc()
}

// ObserveReplace records a checksum-detected replacement.
func (m *Metrics) ObserveReplace(document string) {
	m.Replacements.WithLabelValues(document).Inc()
}

// ObserveSearch records the duration of a search.
// Call with time.Now() at the start of the search.
func (m *Metrics) ObserveSearch(kind string, start time.Time) {
	m.SearchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// ObserveRequest records a served HTTP request.
func (m *Metrics) ObserveRequest(route, code string) {
	m.Requests.WithLabelValues(route, code).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
