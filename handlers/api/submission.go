package api

import (
	"github.com/gofiber/fiber/v2"

	"paperdesk/submission"
	"paperdesk/upload"
	"paperdesk/utils"
)

// SubmissionHandler handles the author-facing manuscript routes
type SubmissionHandler struct {
	service *submission.Service
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(service *submission.Service) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Create accepts a multipart form with manuscript metadata and the file
func (h *SubmissionHandler) Create(c *fiber.Ctx) error {
	input := submission.CreateInput{
		Title:               c.FormValue("title"),
		Abstract:            c.FormValue("abstract"),
		Keywords:            c.FormValue("keywords"),
		Journal:             c.FormValue("journal"),
		CorrespondingAuthor: c.FormValue("correspondingAuthor"),
		AuthorEmail:         c.FormValue("authorEmail"),
		CoAuthors:           c.FormValue("coAuthors"),
		Affiliation:         c.FormValue("affiliation"),
	}

	fileHeader, err := c.FormFile("manuscript")
	if err != nil {
		return fail(c, utils.NoFileError())
	}

	meta := &upload.FileMeta{
		Name:        fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, utils.BadRequestError("Failed to read uploaded file", err))
	}
	defer file.Close()

	sub, err := h.service.Create(c.Context(), input, meta, file)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"submission": sub,
	})
}

// List returns the current user's submissions
func (h *SubmissionHandler) List(c *fiber.Ctx) error {
	subs, err := h.service.UserSubmissions()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"submissions": subs})
}

// Get returns one submission by id
func (h *SubmissionHandler) Get(c *fiber.Ctx) error {
	sub, err := h.service.ByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"submission": sub})
}

// Stats returns the current user's per-status and per-payment counts
func (h *SubmissionHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"stats": stats})
}
