package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"paperdesk/auth"
	"paperdesk/config"
	"paperdesk/middleware"
	"paperdesk/utils"
)

// AuthHandler handles author registration, login and account settings
type AuthHandler struct {
	config *config.Config
	auth   *auth.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config, authMgr *auth.Manager) *AuthHandler {
	return &AuthHandler{config: cfg, auth: authMgr}
}

// Register creates a new author account
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input auth.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, utils.BadRequestError("Invalid request body", err))
	}

	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Password == "" {
		return fail(c, utils.BadRequestError("Email and password are required", nil))
	}

	user, err := h.auth.Register(input)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{"user": user.Sanitized()})
}

// Login authenticates an author and sets the session cookie
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, utils.BadRequestError("Invalid request body", err))
	}

	session, err := h.auth.Login(strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return fail(c, err)
	}

	token, err := auth.GenerateToken(session.SubjectID, session.Email, session.Role, h.config.JWT.Secret, auth.SessionTTL)
	if err != nil {
		return fail(c, utils.StorageError("Failed to create authentication token", err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.UserCookie,
		Value:    token,
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HTTPOnly: true,
		SameSite: "Strict",
	})

	return ok(c, fiber.Map{"session": session})
}

// Logout clears the session and its cookie
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(); err != nil {
		return fail(c, err)
	}
	c.ClearCookie(middleware.UserCookie)
	return ok(c, fiber.Map{})
}

// Me returns the current session
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, err := h.auth.CurrentSession()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"session": session})
}

// ChangePassword replaces the current user's password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, utils.BadRequestError("Invalid request body", err))
	}
	if req.NewPassword == "" {
		return fail(c, utils.BadRequestError("New password is required", nil))
	}

	if err := h.auth.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{})
}
