// Package metrics exposes prometheus instrumentation for the HTTP
// surface, the integrity scan and reconciliation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	ValidationRuns     *prometheus.CounterVec
	ValidationErrors   prometheus.Gauge
	ValidationWarnings prometheus.Gauge
	ValidationFlagged  *prometheus.GaugeVec

	ReconcileActions *prometheus.CounterVec

	SchedulerJobRuns *prometheus.CounterVec
}

// New builds the metric set on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riasku_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "riasku_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		ValidationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riasku_validation_runs_total",
			Help: "Validation passes by trigger.",
		}, []string{"trigger"}),
		ValidationErrors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "riasku_validation_errors",
			Help: "Errors found by the most recent validation pass.",
		}),
		ValidationWarnings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "riasku_validation_warnings",
			Help: "Warnings found by the most recent validation pass.",
		}),
		ValidationFlagged: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "riasku_validation_flagged_records",
			Help: "Flagged records in the most recent validation pass.",
		}, []string{"kind"}),
		ReconcileActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riasku_reconcile_actions_total",
			Help: "Reconciliation actions by outcome.",
		}, []string{"action"}),
		SchedulerJobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riasku_scheduler_job_runs_total",
			Help: "Scheduler job executions by job and outcome.",
		}, []string{"job", "outcome"}),
	}

	registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.ValidationRuns,
		m.ValidationErrors,
		m.ValidationWarnings,
		m.ValidationFlagged,
		m.ReconcileActions,
		m.SchedulerJobRuns,
	)
	return m
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveValidation publishes the outcome of a validation pass.
func (m *Metrics) ObserveValidation(trigger string, totalErrors, totalWarnings, clients, projects, invoices int) {
	m.ValidationRuns.WithLabelValues(trigger).Inc()
	m.ValidationErrors.Set(float64(totalErrors))
	m.ValidationWarnings.Set(float64(totalWarnings))
	m.ValidationFlagged.WithLabelValues("clients").Set(float64(clients))
	m.ValidationFlagged.WithLabelValues("projects").Set(float64(projects))
	m.ValidationFlagged.WithLabelValues("invoices").Set(float64(invoices))
}

// GinMiddleware records request counts and latency.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
