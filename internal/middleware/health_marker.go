package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis keys for the health traffic counters (read by the health module).
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
	KeyErrorLog  = "health:global:error_log"
)

// HealthMarker records request stats in Redis (skips /, /health*, favicon).
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		ms := time.Since(start).Milliseconds()
		status := c.Response().StatusCode()

		ctx := context.Background()
		pipe := rdb.Pipeline()
		pipe.Incr(ctx, KeyReqTotal)
		if err != nil || status >= 500 {
			pipe.Incr(ctx, KeyReqErrors)
			entry, _ := json.Marshal(map[string]interface{}{
				"time":   time.Now().UTC().Format(time.RFC3339),
				"path":   path,
				"method": c.Method(),
				"status": status,
			})
			pipe.LPush(ctx, KeyErrorLog, string(entry))
			pipe.LTrim(ctx, KeyErrorLog, 0, 99)
		}
		pipe.IncrBy(ctx, KeyResTime, ms)
		pipe.Incr(ctx, KeyResCount)
		pipe.SetNX(ctx, KeyStartTime, time.Now().UnixMilli(), 0)
		lastReq, _ := json.Marshal(map[string]interface{}{
			"time":   time.Now().UTC().Format(time.RFC3339),
			"path":   path,
			"method": c.Method(),
			"status": status,
			"ms":     ms,
		})
		pipe.Set(ctx, KeyLastReq, string(lastReq), 0)
		_, _ = pipe.Exec(ctx)

		return err
	}
}
