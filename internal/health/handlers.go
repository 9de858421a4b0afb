package health

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"carmarket-backend/internal/middleware"
	"carmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for the health endpoints.
type Handlers struct {
	Rdb            *redis.Client
	DB             DBPinger
	HealthAdminKey string
}

// Live GET / — bare liveness probe.
func (h *Handlers) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"service": "carmarket-api", "status": "live"})
}

// JSON GET /health/json — full health report.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx := context.Background()
	result := CollectHealth(ctx, h.Rdb, h.DB)
	return c.JSON(fiber.Map{
		"service":      "carmarket-api",
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Errors GET /health/errors — last 50 error log entries from Redis.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	ctx := context.Background()
	entries, err := h.Rdb.LRange(ctx, middleware.KeyErrorLog, 0, 49).Result()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	errors := make([]map[string]interface{}, 0, len(entries))
	for _, s := range entries {
		var m map[string]interface{}
		if _ = json.Unmarshal([]byte(s), &m); m != nil {
			errors = append(errors, m)
		}
	}
	return c.JSON(errors)
}

// Reset GET /health/reset?key= — clears the traffic counters. Requires
// the admin key from config.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	ctx := context.Background()
	keys := []string{
		middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime,
		middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq,
		middleware.KeyErrorLog,
	}
	if err := h.Rdb.Del(ctx, keys...).Err(); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	if err := h.Rdb.Set(ctx, middleware.KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err(); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"success": true}, nil)
}
