package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireSession rejects requests without a valid admin bearer token and
// stores the verified session in the request context.
func RequireSession(a *Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		session, err := a.Verify(strings.TrimSpace(token))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		if session.Role != RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin role required")
		}

		c.Locals(localsKey, session)
		c.SetUserContext(NewContext(c.UserContext(), session))
		return c.Next()
	}
}
