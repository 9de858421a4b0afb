package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTracingApp() *fiber.App {
	app := fiber.New()
	app.Use(Tracing())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetTraceID(c))
	})
	return app
}

func TestTracing_GeneratesTraceID(t *testing.T) {
	app := setupTracingApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	traceID := resp.Header.Get("X-Trace-Id")
	_, err = uuid.Parse(traceID)
	assert.NoError(t, err)
}

func TestTracing_ReusesInboundTraceID(t *testing.T) {
	app := setupTracingApp()
	inbound := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-Id", inbound)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, inbound, resp.Header.Get("X-Trace-Id"))
}

func TestTracing_RejectsMalformedTraceID(t *testing.T) {
	app := setupTracingApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-Id", "not-a-uuid")
	resp, err := app.Test(req)
	require.NoError(t, err)

	traceID := resp.Header.Get("X-Trace-Id")
	assert.NotEqual(t, "not-a-uuid", traceID)
	_, err = uuid.Parse(traceID)
	assert.NoError(t, err)
}
