package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the Prometheus scrape endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.Handler())
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route string, status int, duration time.Duration) {
	HTTPRequests().WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPLatency().WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveAlunoAPICall records one call to the remote aluno API.
func ObserveAlunoAPICall(operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	AlunoAPICalls().WithLabelValues(operation, outcome).Inc()
	AlunoAPILatency().WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
