package observability_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/diario-eletronico/internal/observability"
)

func TestObserveAlunoAPICallLabelsOutcome(t *testing.T) {
	success := observability.AlunoAPICalls().WithLabelValues("list", "success")
	failure := observability.AlunoAPICalls().WithLabelValues("create", "error")
	beforeSuccess := testutil.ToFloat64(success)
	beforeFailure := testutil.ToFloat64(failure)

	observability.ObserveAlunoAPICall("list", time.Now(), nil)
	observability.ObserveAlunoAPICall("create", time.Now(), errors.New("boom"))

	require.Equal(t, beforeSuccess+1, testutil.ToFloat64(success))
	require.Equal(t, beforeFailure+1, testutil.ToFloat64(failure))
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	observability.ObserveRequest(fiber.MethodGet, "/", fiber.StatusOK, 10*time.Millisecond)

	app := fiber.New()
	app.Get("/metrics", observability.MetricsHandler())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "diario_http_requests_total")
}
