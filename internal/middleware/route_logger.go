package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const serviceName = "carmarket-api"

// RouteLogger logs the start and end of each request with the trace ID,
// response status and duration.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := GetTraceID(c)
		if traceID == "" {
			traceID = "no-trace-id"
		}
		start := time.Now()
		log.Info().
			Str("service", serviceName).
			Str("trace_id", traceID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request start")
		err := c.Next()
		log.Info().
			Str("service", serviceName).
			Str("trace_id", traceID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Int64("ms", time.Since(start).Milliseconds()).
			Msg("request end")
		return err
	}
}
