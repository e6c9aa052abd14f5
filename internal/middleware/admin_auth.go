package middleware

import (
	"crypto/subtle"
	"os"

	"github.com/gofiber/fiber/v2"
)

// RequireAdminKey guards the /admin group with a shared API key supplied in
// the X-Admin-Key header. The key comes from ADMIN_API_KEY; routes.go skips
// this middleware entirely when the variable is unset (development).
func RequireAdminKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		expected := os.Getenv("ADMIN_API_KEY")
		supplied := c.Get("X-Admin-Key")

		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or missing admin key",
			})
		}
		return c.Next()
	}
}
