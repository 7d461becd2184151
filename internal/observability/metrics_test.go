package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/products", "GET", 200, 0)
	m.RecordRequest("/products", "GET", 200, 0)
	m.RecordError("/manager/me", "GET", "UNAUTHORIZED")
	m.RecordLogin("success")
	m.RecordLogin("failure")
	m.RecordLogin("failure")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/products|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/manager/me|GET|UNAUTHORIZED"])
	assert.Equal(t, int64(2), snap.Logins["failure"])

	snap.Logins["failure"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Logins["failure"])
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordLogin("success")
	assert.Empty(t, m.Snapshot().Logins)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request", entry.Message)
	assert.Equal(t, int64(http.StatusTeapot), entry.ContextMap()["status"])
	assert.Equal(t, int64(1), metrics.Snapshot().Requests["/ping|GET|418"])
}
