package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"vendrefacile/internal/auth"
	applog "vendrefacile/internal/log"
)

// RequireUser verifies the bearer token and stores the caller identity in
// Locals before any protected handler runs.
func RequireUser(jwt *auth.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization header"})
		}
		userID, role, err := jwt.Verify(parts[1])
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		c.Locals("userID", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

func callerID(c *fiber.Ctx) int64 {
	id, _ := c.Locals("userID").(int64)
	return id
}
