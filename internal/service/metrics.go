package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcome labels.
const (
	RunResultPosted  = "posted"
	RunResultSkipped = "skipped"
	RunResultError   = "error"
)

// MetricsService encapsulates Prometheus instrumentation for recap runs
// and the HTTP trigger surface.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	runsTotal       *prometheus.CounterVec
	runDuration     *prometheus.HistogramVec
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recap_runs_total",
		Help: "Total recap runs by mode and outcome",
	}, []string{"mode", "result"})

	runDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recap_run_duration_seconds",
		Help:    "Duration of recap runs in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	registry.MustRegister(runsTotal, runDuration, requestDuration, requestTotal)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		runsTotal:       runsTotal,
		runDuration:     runDuration,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}
}

// ObserveRun records one recap run.
func (m *MetricsService) ObserveRun(mode, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(mode, result).Inc()
	m.runDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// ObserveHTTPRequest records one trigger-surface request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestTotal.WithLabelValues(method, path, code).Inc()
	m.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

// Handler exposes the Prometheus scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}
