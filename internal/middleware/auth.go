package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/gigflow/internal/utils"
)

// CookieName is the session cookie set on login.
const CookieName = "gigflow_token"

// legacyCookieName is still accepted so older clients keep working.
const legacyCookieName = "token"

func tokenFrom(c *fiber.Ctx) string {
	if v := c.Cookies(CookieName); v != "" {
		return v
	}
	if v := c.Cookies(legacyCookieName); v != "" {
		return v
	}
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}

// RequireAuth verifies the session JWT and stores the caller's id in
// Locals("userId") as a string.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := tokenFrom(c)
		if tokenStr == "" {
			return unauthorized(c, "not authorized")
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return unauthorized(c, "invalid token")
		}

		uid := strings.TrimSpace(claims.UserID)
		if uid == "" {
			return unauthorized(c, "invalid token")
		}

		c.Locals("userId", uid)
		return c.Next()
	}
}
