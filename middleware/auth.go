package middleware

import (
	"github.com/gofiber/fiber/v2"

	"paperdesk/auth"
	"paperdesk/models"
)

// Session cookie names
const (
	UserCookie  = "pd_session"
	AdminCookie = "pd_admin_session"
)

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   "Authentication required",
	})
}

// RequireUser guards author routes. The cookie token must parse and the
// stored session must be live and belong to the same subject; passing
// requests get the session in locals.
func RequireUser(mgr *auth.Manager, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(UserCookie)
		if tokenStr == "" {
			return unauthorized(c)
		}

		claims, err := auth.ParseToken(tokenStr, secret)
		if err != nil || claims.Role != models.RoleAuthor {
			return unauthorized(c)
		}

		session, err := mgr.CurrentSession()
		if err != nil || session.SubjectID != claims.Subject {
			return unauthorized(c)
		}

		c.Locals("session", session)
		c.Locals("userId", session.SubjectID)
		return c.Next()
	}
}

// RequireAdmin guards admin routes the same way over the admin session
func RequireAdmin(mgr *auth.AdminManager, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(AdminCookie)
		if tokenStr == "" {
			return unauthorized(c)
		}

		claims, err := auth.ParseToken(tokenStr, secret)
		if err != nil || claims.Role != models.RoleAdmin {
			return unauthorized(c)
		}

		session, err := mgr.CurrentSession()
		if err != nil || session.SubjectID != claims.Subject {
			return unauthorized(c)
		}

		c.Locals("session", session)
		c.Locals("adminId", session.SubjectID)
		return c.Next()
	}
}
