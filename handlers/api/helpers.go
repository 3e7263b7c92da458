package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"paperdesk/utils"
)

// fail maps an application error to a JSON response. Unknown errors
// become a 500 without leaking internals.
func fail(c *fiber.Ctx, err error) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.Code).JSON(fiber.Map{
			"success": false,
			"error":   appErr.Message,
			"kind":    string(appErr.Kind),
		})
	}

	utils.Log.Error("Unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Internal server error",
	})
}

// ok wraps a payload in the standard success envelope
func ok(c *fiber.Ctx, payload fiber.Map) error {
	payload["success"] = true
	return c.JSON(payload)
}
