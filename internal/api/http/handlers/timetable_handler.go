package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deadline-tracker/internal/api/dto"
	"github.com/spec-kit/deadline-tracker/internal/domain"
	"github.com/spec-kit/deadline-tracker/internal/service"
	"github.com/spec-kit/deadline-tracker/internal/timetable"
	"github.com/spec-kit/deadline-tracker/internal/view"
	apperrors "github.com/spec-kit/deadline-tracker/pkg/util"
)

// TimetableHandler serves the timetable as JSON and as an HTML page.
type TimetableHandler struct {
	auth       *service.AuthService
	timetables *service.TimetableService
}

// NewTimetableHandler constructs handler.
func NewTimetableHandler(authService *service.AuthService, timetables *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{auth: authService, timetables: timetables}
}

// JSON handles GET /api/timetable.
func (h *TimetableHandler) JSON(c *fiber.Ctx) error {
	v, err := h.build(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TimetableResponse{
		User:      dto.UserResponse{ID: v.UserID, Name: v.UserName, Email: v.Email},
		Today:     v.Today.Format(domain.DateLayout),
		Daily:     toEntries(v.Daily),
		Weekly:    toEntries(v.Weekly),
		Monthly:   toEntries(v.Monthly),
		Schedules: v.Schedules,
	}})
}

// Page handles GET /timetable. ?mode= narrows the page to one bucket.
func (h *TimetableHandler) Page(c *fiber.Ctx) error {
	v, err := h.build(c)
	if err != nil {
		return err
	}
	html, err := view.Timetable(*v, c.Query("mode", view.ModeAll))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

func (h *TimetableHandler) build(c *fiber.Ctx) (*timetable.View, error) {
	session, err := requireSession(c)
	if err != nil {
		return nil, err
	}
	user, err := h.auth.CurrentUser(c.UserContext(), session)
	if err != nil {
		return nil, err
	}
	return h.timetables.Build(c.UserContext(), *user)
}

func toEntries(entries []timetable.Entry) []dto.TimetableEntry {
	out := make([]dto.TimetableEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.TimetableEntry{
			DeadlineID: e.Deadline.ID,
			Subject:    e.Subject,
			DueDate:    e.Due(),
			DaysLeft:   e.DaysLeft,
		})
	}
	return out
}
