package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// AdminSession guards the admin routes. The validator is supplied by the auth
// service so this package stays free of service imports.
func AdminSession(valid func(token string) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("X-Admin-Token")
		if token == "" || !valid(token) {
			log.Printf("🚫 [ADMIN_AUTH] Missing or invalid session token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "admin login required",
			})
		}
		return c.Next()
	}
}
