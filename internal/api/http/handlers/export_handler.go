package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deadline-tracker/internal/api/dto"
	"github.com/spec-kit/deadline-tracker/internal/export"
	"github.com/spec-kit/deadline-tracker/internal/service"
	apperrors "github.com/spec-kit/deadline-tracker/pkg/util"
)

// ExportHandler streams PDFs.
type ExportHandler struct {
	auth    *service.AuthService
	exports *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(authService *service.AuthService, exports *service.ExportService) *ExportHandler {
	return &ExportHandler{auth: authService, exports: exports}
}

// GeneratePDF handles POST /generate-pdf with {html_content, mode}.
func (h *ExportHandler) GeneratePDF(c *fiber.Ctx) error {
	var req dto.ExportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	res, err := h.exports.ExportHTML(c.UserContext(), 0, req.HTMLContent, req.Mode)
	if err != nil {
		return err
	}
	return sendPDF(c, res)
}

// TimetablePDF handles GET /api/timetable/pdf?mode=.
func (h *ExportHandler) TimetablePDF(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	user, err := h.auth.CurrentUser(c.UserContext(), session)
	if err != nil {
		return err
	}

	res, err := h.exports.ExportTimetable(c.UserContext(), *user, c.Query("mode", export.DefaultMode))
	if err != nil {
		return err
	}
	return sendPDF(c, res)
}

func sendPDF(c *fiber.Ctx, res *service.ExportResult) error {
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, export.ContentDisposition(res.Filename))
	return c.Send(res.Content)
}
