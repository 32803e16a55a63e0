package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CtxRequestID is the fiber locals key carrying the request id.
const CtxRequestID = "request_id"

const headerRequestID = "X-Request-ID"

// RequestIDMiddleware honors an inbound X-Request-ID and generates a uuid
// when absent. The id is stored in locals for the logger and echoed on the
// response so callers can correlate campaign submissions with server logs.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals(CtxRequestID, reqID)
		c.Set(headerRequestID, reqID)
		return c.Next()
	}
}
