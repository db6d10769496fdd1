package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "chartly"

// Metrics holds the server collectors in a private registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	renders  *prometheus.HistogramVec
	rows     *prometheus.CounterVec
}

// NewMetrics registers the collectors together with the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of incoming HTTP requests.",
		}, []string{"route", "method", "status"}),
		renders: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Histogram of chart render durations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "format"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Number of imported CSV lines by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.renders,
		m.rows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRender(started time.Time, kind, format string) {
	m.renders.WithLabelValues(kind, format).Observe(time.Since(started).Seconds())
}

func (m *Metrics) countRows(accepted, skipped int) {
	m.rows.WithLabelValues("accepted").Add(float64(accepted))
	m.rows.WithLabelValues("skipped").Add(float64(skipped))
}
