// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics exposes Prometheus metrics for the HTTP server and the
// revalidation notifier.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olegiv/dualsite/internal/version"
)

// ServerMetrics owns a private registry and the collectors registered on it.
type ServerMetrics struct {
	reg                  *prometheus.Registry
	handler              http.Handler
	inflight             prometheus.Gauge
	reqTotal             *prometheus.CounterVec
	reqDur               *prometheus.HistogramVec
	errorsTotal          *prometheus.CounterVec
	buildInfo            *prometheus.GaugeVec
	ratelimitDeniedTotal *prometheus.CounterVec
	revalidationTotal    *prometheus.CounterVec
}

// New returns a fresh registry with the Go and process collectors and the
// HTTP metrics. Labels are limited to method, route and status to keep
// cardinality bounded.
func New() *ServerMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &ServerMetrics{
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests",
		}),
		reqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route, and status",
		}, []string{"method", "route", "status"}),
		reqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency by method and route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total 5xx HTTP server errors by method and route",
		}, []string{"method", "route"}),
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build metadata (value is always 1)",
		}, []string{"version", "commit", "build_time"}),
		ratelimitDeniedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_rate_limited_total",
			Help: "Total requests rejected by a rate limiter",
		}, []string{"limiter"}),
		revalidationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "revalidation_requests_total",
			Help: "Frontend revalidation calls by website and result",
		}, []string{"website", "result"}),
	}
	reg.MustRegister(
		m.inflight,
		m.reqTotal,
		m.reqDur,
		m.errorsTotal,
		m.buildInfo,
		m.ratelimitDeniedTotal,
		m.revalidationTotal,
	)

	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	m.reg = reg
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *ServerMetrics) Handler() http.Handler {
	return m.handler
}

// Registry returns the underlying registry.
func (m *ServerMetrics) Registry() *prometheus.Registry {
	return m.reg
}

// SetBuildInfo is called once at startup.
func (m *ServerMetrics) SetBuildInfo(vi version.Info) {
	m.buildInfo.WithLabelValues(vi.Version, vi.GitCommit, vi.BuildTime).Set(1)
}

// IncRateLimitDenied counts a request rejected by the named limiter.
func (m *ServerMetrics) IncRateLimitDenied(limiter string) {
	m.ratelimitDeniedTotal.WithLabelValues(limiter).Inc()
}

// RevalidationResult counts one notifier outcome. It matches the
// revalidate.ResultFunc signature.
func (m *ServerMetrics) RevalidationResult(website, result string) {
	m.revalidationTotal.WithLabelValues(website, result).Inc()
}
