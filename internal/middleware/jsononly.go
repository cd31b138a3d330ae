package middleware

import (
	"strings"

	"station-api/internal/response"

	"github.com/gofiber/fiber/v2"
)

// JSONOnly rejects requests carrying a non-JSON body. Bodyless requests
// pass through untouched.
func JSONOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(c.Body()) == 0 {
			return c.Next()
		}

		contentType := c.Get(fiber.HeaderContentType)
		if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return response.BadRequest(c, "Only JSON requests are accepted")
		}

		return c.Next()
	}
}
