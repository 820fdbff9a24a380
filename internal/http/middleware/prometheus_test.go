package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	return app, m, reg
}

func TestPrometheusMiddleware_StatusLabels(t *testing.T) {
	app, m, _ := newPromApp(t)

	app.Put("/documents/:id/pages/:pageId/status", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Put("/documents/:id/progress", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "progress out of range")
	})
	app.Post("/documents/:id/export", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	for _, page := range []string{"p1", "p2"} {
		resp, err := app.Test(httptest.NewRequest("PUT", "/documents/d1/pages/"+page+"/status", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
	_, err := app.Test(httptest.NewRequest("PUT", "/documents/d1/progress", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("POST", "/documents/d1/export", nil))
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("PUT", "/documents/:id/pages/:pageId/status", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("PUT", "/documents/:id/progress", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("POST", "/documents/:id/export", "404")))
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	app, _, reg := newPromApp(t)

	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		assert.Empty(t, mf.GetMetric(), mf.GetName())
	}
}

func TestPrometheusMiddleware_Duration(t *testing.T) {
	app, m, _ := newPromApp(t)

	app.Get("/documents/:id/pages", func(c *fiber.Ctx) error {
		return c.JSON([]string{})
	})

	_, err := app.Test(httptest.NewRequest("GET", "/documents/d1/pages", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/documents/d2/pages", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))

	expected := `
# HELP http_requests_total Total number of HTTP requests processed.
# TYPE http_requests_total counter
http_requests_total{method="GET",path="/documents/:id/pages",status="200"} 2
`
	assert.NoError(t, testutil.CollectAndCompare(m.requestCount, strings.NewReader(expected)))
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
