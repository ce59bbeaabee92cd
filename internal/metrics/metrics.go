// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector. Each server instance owns its registry so
// tests can build several without duplicate registration panics.
type Metrics struct {
	registry *prometheus.Registry

	Requests      *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
	ListItems     *prometheus.CounterVec
	StoreFailures *prometheus.CounterVec
	Records       *prometheus.GaugeVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "games_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "games_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ListItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "games_list_items_total",
			Help: "Items served by the unified listing, by source store.",
		}, []string{"source"}),
		StoreFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "games_store_errors_total",
			Help: "Record store failures surfaced to clients, by operation.",
		}, []string{"op"}),
		Records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "games_store_records",
			Help: "Records held by the store at the last stats refresh, by source.",
		}, []string{"source"}),
	}
	reg.MustRegister(
		m.Requests, m.Duration, m.ListItems, m.StoreFailures, m.Records,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveList counts items served from one source store.
func (m *Metrics) ObserveList(source string, n int) {
	if n > 0 {
		m.ListItems.WithLabelValues(source).Add(float64(n))
	}
}

// StoreError counts a failed store operation.
func (m *Metrics) StoreError(op string) {
	m.StoreFailures.WithLabelValues(op).Inc()
}

// SetRecords records the current size of one source store.
func (m *Metrics) SetRecords(source string, n int) {
	m.Records.WithLabelValues(source).Set(float64(n))
}
