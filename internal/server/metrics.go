package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors. Each Server owns its own
// registry so several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.SummaryVec
	requestsTotal   *prometheus.CounterVec
	rendersTotal    *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
	renderBytes     prometheus.Histogram
	assistTotal     *prometheus.CounterVec
	rateLimited     prometheus.Counter
}

// NewMetrics registers the collectors on a fresh registry, together with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestDuration: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		rendersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_renders_total",
				Help: "PDF renders by template and outcome",
			},
			[]string{"template", "outcome"},
		),
		renderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "resume_render_duration_seconds",
				Help:    "Time spent laying out one PDF",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"template"},
		),
		renderBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "resume_render_bytes",
			Help:    "Size of rendered PDFs",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 10),
		}),
		assistTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_requests_total",
				Help: "Assistant requests by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observeRequest(method, path string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, code).Observe(d.Seconds())
	m.requestsTotal.WithLabelValues(method, path, code).Inc()
}

func (m *Metrics) observeRender(template string, size int, d time.Duration, err error) {
	if err != nil {
		m.rendersTotal.WithLabelValues(template, "error").Inc()
		return
	}
	m.rendersTotal.WithLabelValues(template, "ok").Inc()
	m.renderDuration.WithLabelValues(template).Observe(d.Seconds())
	m.renderBytes.Observe(float64(size))
}

func (m *Metrics) observeAssist(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.assistTotal.WithLabelValues(kind, outcome).Inc()
}
