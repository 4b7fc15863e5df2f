package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/aperturelabs/alms/internal/response"
)

const TraceIDHeader = "X-Trace-ID"

// TraceID tags every request with the caller's X-Trace-ID or a fresh UUID
// and echoes it back in the response.
func TraceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Locals(response.TraceIDKey, traceID)
		c.Set(TraceIDHeader, traceID)

		return c.Next()
	}
}

func GetTraceID(c *fiber.Ctx) string {
	if id, ok := c.Locals(response.TraceIDKey).(string); ok {
		return id
	}
	return ""
}
