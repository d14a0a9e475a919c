package middleware

import (
	"context"

	"inkwell/internal/auth"
	"inkwell/internal/config"

	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the Fiber local under which the resolved identity is stored.
const IdentityKey = "identity"

var cfg *config.Config

// InitMiddleware initializes session middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// ResolveIdentity resolves the session cookie to an identity on every
// request. A missing, malformed or expired cookie resolves to Anonymous,
// never to an error.
func ResolveIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := auth.ParseSession(cfg.SecretKey, c.Cookies(auth.SessionCookieName))
		c.Locals(IdentityKey, identity)

		if identity.IsAuthenticated() {
			ctx := context.WithValue(c.UserContext(), UserIDKey, identity.UserID())
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}

// CurrentIdentity returns the identity resolved for this request.
func CurrentIdentity(c *fiber.Ctx) auth.Identity {
	if identity, ok := c.Locals(IdentityKey).(auth.Identity); ok {
		return identity
	}
	return auth.Anonymous
}

// RequireLogin redirects anonymous requesters to the login form with an
// explanatory flash message.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentIdentity(c).IsAuthenticated() {
			SetFlash(c, "error", "You have to be logged in to use this feature.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
