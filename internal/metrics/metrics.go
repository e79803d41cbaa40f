// Package metrics holds the Prometheus collectors shared by the server and adapters.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	LatencyHistogram *prometheus.HistogramVec
	RateLimitHits    *prometheus.CounterVec
	Evaluations      *prometheus.CounterVec
	MostEconomical   *prometheus.CounterVec
	RateLoads        *prometheus.CounterVec
	registry         *prometheus.Registry
}

var (
	defaultInstance *Metrics
	defaultOnce     sync.Once
)

// New creates metrics on a private registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudguide_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		LatencyHistogram: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cloudguide_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RateLimitHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudguide_rate_limit_hits_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
			[]string{"route"},
		),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudguide_evaluations_total",
				Help: "Engine evaluations by kind and outcome",
			},
			[]string{"kind", "result"},
		),
		MostEconomical: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudguide_most_economical_total",
				Help: "How often each provider was the cheapest in a comparison",
			},
			[]string{"provider"},
		),
		RateLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cloudguide_rate_loads_total",
				Help: "Rate table loads by source and outcome",
			},
			[]string{"source", "result"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.RequestCounter,
		m.LatencyHistogram,
		m.RateLimitHits,
		m.Evaluations,
		m.MostEconomical,
		m.RateLoads,
	)

	return m
}

// Default returns the process-wide metrics
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultInstance = New()
	})
	return defaultInstance
}

// IncrementRequest increments the request counter
func (m *Metrics) IncrementRequest(method, route string, status int) {
	m.RequestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// RecordLatency records request latency
func (m *Metrics) RecordLatency(method, route string, seconds float64) {
	m.LatencyHistogram.WithLabelValues(method, route).Observe(seconds)
}

// IncrementRateLimitHit increments the rate limit counter
func (m *Metrics) IncrementRateLimitHit(route string) {
	m.RateLimitHits.WithLabelValues(route).Inc()
}

// RecordEvaluation counts an engine call
func (m *Metrics) RecordEvaluation(kind string, err error) {
	m.Evaluations.WithLabelValues(kind, outcome(err)).Inc()
}

// RecordMostEconomical counts a provider win
func (m *Metrics) RecordMostEconomical(provider string) {
	m.MostEconomical.WithLabelValues(provider).Inc()
}

// RecordRateLoad counts a rate table load
func (m *Metrics) RecordRateLoad(source string, err error) {
	m.RateLoads.WithLabelValues(source, outcome(err)).Inc()
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus metrics handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
