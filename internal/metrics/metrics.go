// Package metrics holds the Prometheus collectors for loaders, fetches and mutations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Load outcomes.
const (
	LoadPublished = "published"
	LoadStale     = "stale"
	LoadFailed    = "failed"
	LoadThrottled = "throttled"
	LoadCleared   = "cleared"
)

// Fetch sources.
const (
	FetchCache  = "cache"
	FetchRemote = "remote"
	FetchShared = "shared"
)

// Metrics groups every collector the service exports.
type Metrics struct {
	registry *prometheus.Registry

	Loads        *prometheus.CounterVec
	LoadDuration prometheus.Histogram
	Fetches      *prometheus.CounterVec
	Mutations    *prometheus.CounterVec
	Sessions     prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pg_console",
			Subsystem: "loader",
			Name:      "loads_total",
			Help:      "Aggregate loads by outcome.",
		}, []string{"outcome"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pg_console",
			Subsystem: "loader",
			Name:      "load_duration_seconds",
			Help:      "Duration of one fetch, join and filter execution.",
			Buckets:   prometheus.DefBuckets,
		}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pg_console",
			Subsystem: "fetch",
			Name:      "requests_total",
			Help:      "Collection fetches by entity and where the result came from.",
		}, []string{"entity", "source"}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pg_console",
			Subsystem: "mutation",
			Name:      "operations_total",
			Help:      "Mutation operations by name and result.",
		}, []string{"operation", "result"}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pg_console",
			Subsystem: "session",
			Name:      "active",
			Help:      "Live per-actor session stores.",
		}),
	}
	reg.MustRegister(m.Loads, m.LoadDuration, m.Fetches, m.Mutations, m.Sessions)
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveLoad counts one load outcome. Safe on a nil receiver.
func (m *Metrics) ObserveLoad(outcome string) {
	if m == nil {
		return
	}
	m.Loads.WithLabelValues(outcome).Inc()
}

// ObserveLoadDuration records how long an execution took in seconds.
func (m *Metrics) ObserveLoadDuration(seconds float64) {
	if m == nil {
		return
	}
	m.LoadDuration.Observe(seconds)
}

// ObserveFetch counts one collection fetch.
func (m *Metrics) ObserveFetch(entity, source string) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(entity, source).Inc()
}

// ObserveMutation counts one mutation with result "ok" or "error".
func (m *Metrics) ObserveMutation(operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Mutations.WithLabelValues(operation, result).Inc()
}

// SetSessions sets the live session gauge.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.Sessions.Set(float64(n))
}
