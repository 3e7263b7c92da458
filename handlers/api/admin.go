package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"paperdesk/admin"
	"paperdesk/auth"
	"paperdesk/config"
	"paperdesk/middleware"
	"paperdesk/models"
	"paperdesk/utils"
)

// AdminHandler handles the privileged portal routes
type AdminHandler struct {
	config  *config.Config
	auth    *auth.AdminManager
	service *admin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cfg *config.Config, authMgr *auth.AdminManager, service *admin.Service) *AdminHandler {
	return &AdminHandler{config: cfg, auth: authMgr, service: service}
}

// Login authenticates an admin and sets the admin session cookie
func (h *AdminHandler) Login(c *fiber.Ctx) error {
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
		Name:     middleware.AdminCookie,
		Value:    token,
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HTTPOnly: true,
		SameSite: "Strict",
	})

	return ok(c, fiber.Map{"session": session})
}

// Logout clears the admin session and its cookie
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(); err != nil {
		return fail(c, err)
	}
	c.ClearCookie(middleware.AdminCookie)
	return ok(c, fiber.Map{})
}

// ChangeCredentials updates the admin email and/or password
func (h *AdminHandler) ChangeCredentials(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewEmail        string `json:"newEmail"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, utils.BadRequestError("Invalid request body", err))
	}

	if err := h.auth.ChangeCredentials(req.CurrentPassword, req.NewEmail, req.NewPassword); err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{})
}

// Submissions returns every non-deleted submission
func (h *AdminHandler) Submissions(c *fiber.Ctx) error {
	subs, err := h.service.AllSubmissions()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"submissions": subs})
}

// Users returns every non-deleted user without password hashes
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.service.AllUsers()
	if err != nil {
		return fail(c, err)
	}

	sanitized := make([]models.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitized())
	}
	return ok(c, fiber.Map{"users": sanitized})
}

// UpdateStatus sets a submission's review status
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, utils.BadRequestError("Invalid request body", err))
	}
	if !models.ValidStatus(req.Status) {
		return fail(c, utils.BadRequestError("Unknown status", nil))
	}

	sub, err := h.service.UpdateSubmissionStatus(c.Params("id"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"submission": sub})
}

// UpdatePayment sets a submission's payment status with optional details
func (h *AdminHandler) UpdatePayment(c *fiber.Ctx) error {
	var req struct {
		PaymentStatus string               `json:"paymentStatus"`
		Details       admin.PaymentDetails `json:"details"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, utils.BadRequestError("Invalid request body", err))
	}
	if !models.ValidPaymentStatus(req.PaymentStatus) {
		return fail(c, utils.BadRequestError("Unknown payment status", nil))
	}

	sub, err := h.service.UpdatePaymentStatus(c.Params("id"), req.PaymentStatus, &req.Details)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"submission": sub})
}

// DeleteSubmission soft-deletes a submission
func (h *AdminHandler) DeleteSubmission(c *fiber.Ctx) error {
	if err := h.service.DeleteSubmission(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// DeleteUser soft-deletes a user and their submissions
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{})
}

// Payments returns the payment view of all submissions
func (h *AdminHandler) Payments(c *fiber.Ctx) error {
	records, err := h.service.PaymentRecords()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"payments": records})
}

// Statistics returns the dashboard aggregate
func (h *AdminHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.service.Statistics()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"statistics": stats})
}

// Search matches submissions against a query string
func (h *AdminHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return fail(c, utils.BadRequestError("Query parameter q is required", nil))
	}

	subs, err := h.service.Search(query)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"submissions": subs})
}

// Logs returns the most recent audit entries, newest first
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return fail(c, utils.BadRequestError("Invalid limit", err))
		}
		limit = parsed
	}

	logs, err := h.service.ActionLogs(limit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"logs": logs})
}

func csvHeaders(c *fiber.Ctx, filename string) {
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}

// ExportSubmissions downloads all submissions as CSV
func (h *AdminHandler) ExportSubmissions(c *fiber.Ctx) error {
	csvHeaders(c, "submissions.csv")
	return h.service.ExportSubmissionsCSV(c.Response().BodyWriter())
}

// ExportPayments downloads the payment records as CSV
func (h *AdminHandler) ExportPayments(c *fiber.Ctx) error {
	csvHeaders(c, "payments.csv")
	return h.service.ExportPaymentsCSV(c.Response().BodyWriter())
}

// ExportUsers downloads all users as CSV
func (h *AdminHandler) ExportUsers(c *fiber.Ctx) error {
	csvHeaders(c, "users.csv")
	return h.service.ExportUsersCSV(c.Response().BodyWriter())
}
