package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"companyviz/internal/apperr"
	"companyviz/internal/domain"
	applog "companyviz/internal/log"
	"companyviz/internal/services"
)

// Tier is the minimum authorization level a route demands.
type Tier int

const (
	TierPublic Tier = iota
	TierProtected
	TierAdmin
)

// RequireTier is the authorization gate: it resolves the sid cookie to a
// user, enforces the tier, attaches the verified user to the request
// context and records execution latency. Downstream handlers trust
// c.Locals("user") and never re-check identity. Latency recording happens
// on every invocation, pass or fail, and can never alter the outcome.
func RequireTier(auth *services.AuthService, tier Tier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		defer func() {
			applog.Latency(c, "procedure.latency", time.Since(start))
		}()

		var user *domain.User
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil {
				user = u
			}
		}

		if tier >= TierProtected && user == nil {
			applog.Security(c, "access.denied.anonymous", nil)
			return apperr.Unauthorized("authentication required")
		}
		if tier >= TierAdmin && !user.IsAdmin() {
			applog.Security(c, "access.denied.role", map[string]any{"user_id": user.ID})
			return apperr.Forbidden("admin role required")
		}

		if user != nil {
			c.Locals("user", user)
		}
		return c.Next()
	}
}

// RequireUserPage is the HTML variant: anonymous visitors get sent to the
// login form instead of a 401 body.
func RequireUserPage(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// caller returns the verified identity the gate attached.
func caller(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
