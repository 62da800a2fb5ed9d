package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// IgnoreProbes answers browser and tooling probes for files the UI does not
// ship so they never reach the router.
func IgnoreProbes() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if strings.HasPrefix(path, "/.well-known/") || path == "/favicon.ico" {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
