package auth

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const RoleAdmin = "admin"

// Session is the verified identity attached to a request.
type Session struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type sessionKey struct{}

const localsKey = "session"

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored by RequireSession, or nil.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok {
		return s
	}
	return nil
}

// SessionFrom returns the request's session; an empty session when the route
// is not guarded.
func SessionFrom(c *fiber.Ctx) *Session {
	if s, ok := c.Locals(localsKey).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}
