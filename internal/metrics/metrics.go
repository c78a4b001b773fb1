// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

// Reload results.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// Metrics uses an isolated registry so tests can build their own.
type Metrics struct {
	Registry *prometheus.Registry

	ReloadsTotal          *prometheus.CounterVec
	ReloadDurationSeconds prometheus.Histogram
	Issues                *prometheus.GaugeVec
	Docs                  prometheus.Gauge
	HTTPRequestsTotal     *prometheus.CounterVec
	BuildInfo             *prometheus.GaugeVec
}

// New registers every collector on a fresh registry.
func New(version, commit string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		ReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursesite_reloads_total",
				Help: "Site definition reloads by result.",
			},
			[]string{"result"},
		),
		ReloadDurationSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coursesite_reload_duration_seconds",
				Help:    "Time spent loading, scanning and validating the site.",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
		),
		Issues: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coursesite_validation_issues",
				Help: "Issues in the last validation report by severity.",
			},
			[]string{"severity"},
		),
		Docs: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "coursesite_docs",
				Help: "Docs in the current snapshot.",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursesite_http_requests_total",
				Help: "HTTP requests by route pattern and status class.",
			},
			[]string{"route", "code"},
		),
		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coursesite_info",
				Help: "Build information.",
			},
			[]string{"version", "commit"},
		),
	}

	reg.MustRegister(
		m.ReloadsTotal,
		m.ReloadDurationSeconds,
		m.Issues,
		m.Docs,
		m.HTTPRequestsTotal,
		m.BuildInfo,
	)
	m.BuildInfo.WithLabelValues(version, commit).Set(1)

	return m
}

// ObserveReload records one reload attempt.
func (m *Metrics) ObserveReload(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.ReloadsTotal.WithLabelValues(result).Inc()
	m.ReloadDurationSeconds.Observe(d.Seconds())
}

// ObserveSnapshot publishes the gauges of a newly published snapshot.
func (m *Metrics) ObserveSnapshot(snap *domain.Snapshot) {
	if m == nil || snap == nil {
		return
	}
	m.Docs.Set(float64(len(snap.Docs)))
	for _, sev := range []domain.Severity{domain.SeverityError, domain.SeverityWarning, domain.SeverityInfo} {
		m.Issues.WithLabelValues(string(sev)).Set(float64(snap.Report.Count(sev)))
	}
}

// ObserveRequest counts one served request.
func (m *Metrics) ObserveRequest(route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, statusClass(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
