package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/waalid2540/gew-backend/internal/models"
)

// AdminAuth guards the admin API with a shared-secret bearer credential.
// Responses leak nothing about the underlying data.
func AdminAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		if secret == "" || token != secret {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Unauthorized"))
		}
		return c.Next()
	}
}
