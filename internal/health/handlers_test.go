package health

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"carmarket-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHealthHandlers(t *testing.T) (*Handlers, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return &Handlers{
		Rdb:            rdb,
		DB:             nil,
		HealthAdminKey: "test-admin-key",
	}, mr
}

func TestLive(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/", h.Live)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "carmarket-api", out["service"])
	assert.Equal(t, "live", out["status"])
}

func TestJSON_ReturnsStructure(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "carmarket-api", out["service"])
	assert.Contains(t, out, "status")
	assert.Contains(t, out, "runtime")
	assert.Contains(t, out, "traffic")
	assert.Contains(t, out, "dependencies")
}

func TestJSON_TrafficCounters(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/health/json", h.JSON)

	ctx := context.Background()
	require.NoError(t, h.Rdb.Set(ctx, middleware.KeyReqTotal, "10", 0).Err())
	require.NoError(t, h.Rdb.Set(ctx, middleware.KeyReqErrors, "2", 0).Err())
	require.NoError(t, h.Rdb.Set(ctx, middleware.KeyResTime, "500", 0).Err())
	require.NoError(t, h.Rdb.Set(ctx, middleware.KeyResCount, "10", 0).Err())

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	traffic := out["traffic"].(map[string]interface{})
	assert.Equal(t, float64(10), traffic["totalRequests"])
	assert.Equal(t, float64(8), traffic["successCount"])
	assert.Equal(t, float64(2), traffic["failedCount"])
	assert.Equal(t, "80.0", traffic["successRate"])
	assert.Equal(t, "50.00", traffic["avgResponseTime"])
}

func TestErrors_ReturnsArray(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/health/errors", h.Errors)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var arr []interface{}
	require.NoError(t, json.Unmarshal(body, &arr))
	assert.Empty(t, arr)

	ctx := context.Background()
	h.Rdb.LPush(ctx, middleware.KeyErrorLog, `{"time":"2026-01-01T12:00:00Z","path":"/api/cars","method":"GET","status":500}`)
	resp2, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	body2, _ := io.ReadAll(resp2.Body)
	var arr2 []map[string]interface{}
	require.NoError(t, json.Unmarshal(body2, &arr2))
	require.Len(t, arr2, 1)
	assert.Equal(t, "/api/cars", arr2[0]["path"])
}

func TestReset_Unauthorized(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/health/reset", h.Reset)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp2, err := app.Test(httptest.NewRequest("GET", "/health/reset?key=wrong", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp2.StatusCode)
}

func TestReset_Success(t *testing.T) {
	h, _ := setupHealthHandlers(t)
	app := fiber.New()
	app.Get("/health/reset", h.Reset)

	ctx := context.Background()
	require.NoError(t, h.Rdb.Set(ctx, middleware.KeyReqTotal, "5", 0).Err())
	resp, err := app.Test(httptest.NewRequest("GET", "/health/reset?key=test-admin-key", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "Stats reset successfully", out["message"])

	_, err = h.Rdb.Get(ctx, middleware.KeyReqTotal).Result()
	assert.Error(t, err)
	_, err = h.Rdb.Get(ctx, middleware.KeyStartTime).Result()
	assert.NoError(t, err)
}
