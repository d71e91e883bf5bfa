package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	alunoAPICallsTotal     *prometheus.CounterVec
	alunoAPILatencySeconds *prometheus.HistogramVec
	toastsPublishedTotal   *prometheus.CounterVec
	streamClientsActive    prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the web application.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diario_http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "diario_http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		alunoAPICallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diario_aluno_api_calls_total",
			Help: "Calls issued to the remote aluno API by operation and outcome.",
		}, []string{"operation", "outcome"})

		alunoAPILatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "diario_aluno_api_latency_seconds",
			Help:    "Latency of calls to the remote aluno API.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		}, []string{"operation"})

		toastsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diario_toasts_published_total",
			Help: "Toast notifications published by level.",
		}, []string{"level"})

		streamClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "diario_notification_stream_clients",
			Help: "Currently connected SSE and websocket notification clients.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			alunoAPICallsTotal,
			alunoAPILatencySeconds,
			toastsPublishedTotal,
			streamClientsActive,
		)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// AlunoAPICalls exposes the remote call counter.
func AlunoAPICalls() *prometheus.CounterVec {
	RegisterMetrics()
	return alunoAPICallsTotal
}

// AlunoAPILatency exposes the remote call latency histogram.
func AlunoAPILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return alunoAPILatencySeconds
}

// ToastsPublished exposes the toast counter.
func ToastsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return toastsPublishedTotal
}

// StreamClients exposes the connected stream clients gauge.
func StreamClients() prometheus.Gauge {
	RegisterMetrics()
	return streamClientsActive
}
