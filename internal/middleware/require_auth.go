package middleware

import "github.com/gofiber/fiber/v2"

// RequireAuth gates a route on the identity JWTAuth stored in Locals.
// Requests that arrived without a valid Bearer token get 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		if uid == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		return c.Next()
	}
}
