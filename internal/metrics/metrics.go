// Package metrics exposes Prometheus instrumentation for logins, sessions
// and HTTP traffic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sessionlab"

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	logins   *prometheus.CounterVec
	logouts  *prometheus.CounterVec
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by session strategy and result",
		}, []string{"strategy", "result"}), // result = "success", "failure"
		logouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logouts_total",
			Help:      "Logouts by session strategy",
		}, []string{"strategy"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by status code and method",
		}, []string{"code", "method"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"method"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.logins,
		m.logouts,
		m.requests,
		m.latency,
	)
	return m
}

// LoginAttempt counts a login through strategy.
func (m *Metrics) LoginAttempt(strategy string, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.logins.WithLabelValues(strategy, result).Inc()
}

func (m *Metrics) Logout(strategy string) {
	m.logouts.WithLabelValues(strategy).Inc()
}

// SessionGauge publishes the live value of count under
// sessionlab_<name>_sessions, read at scrape time.
func (m *Metrics) SessionGauge(name, help string, count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name + "_sessions",
		Help:      help,
	}, func() float64 { return float64(count()) }))
}

// Filter instruments every request passing through it.
func (m *Metrics) Filter(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(m.latency,
		promhttp.InstrumentHandlerCounter(m.requests, next))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
