// middleware/request_id.go
package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID tags every request with an X-Request-ID (generating one when the
// caller did not send one) and logs method, path, status and duration.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("request_id", rid)
		c.Set("X-Request-ID", rid)

		start := time.Now()
		err := c.Next()
		log.Printf("[%s] %s %s -> %d (%s)", rid, c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
