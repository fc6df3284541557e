package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deadline-tracker/internal/api/dto"
	"github.com/spec-kit/deadline-tracker/internal/domain"
	"github.com/spec-kit/deadline-tracker/internal/service"
)

// PlannerHandler serves the signed in user's tasks, deadlines and schedules.
type PlannerHandler struct {
	auth    *service.AuthService
	planner *service.PlannerService
}

// NewPlannerHandler constructs handler.
func NewPlannerHandler(authService *service.AuthService, planner *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{auth: authService, planner: planner}
}

// Overview handles GET /api/overview.
func (h *PlannerHandler) Overview(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	user, err := h.auth.CurrentUser(c.UserContext(), session)
	if err != nil {
		return err
	}
	overview, err := h.planner.Overview(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.OverviewResponse{
		User:      toUserResponse(*user),
		Tasks:     overview.Tasks,
		Deadlines: overview.Deadlines,
	}})
}

// ListTasks handles GET /api/tasks.
func (h *PlannerHandler) ListTasks(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	tasks, err := h.planner.ListTasks(c.UserContext(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tasks})
}

// CreateTask handles POST /api/tasks.
func (h *PlannerHandler) CreateTask(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	var req dto.CreateTaskRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	task, err := h.planner.CreateTask(c.UserContext(), session.UserID, req.Title, req.Completed)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": task})
}

// ListDeadlines handles GET /api/deadlines.
func (h *PlannerHandler) ListDeadlines(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	deadlines, err := h.planner.ListDeadlines(c.UserContext(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": deadlines})
}

// CreateDeadline handles POST /api/deadlines.
func (h *PlannerHandler) CreateDeadline(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	var req dto.CreateDeadlineRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	deadline, err := h.planner.CreateDeadline(c.UserContext(), session.UserID, req.Subject, req.DueDate)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": deadline})
}

// ListSchedules handles GET /api/schedules.
func (h *PlannerHandler) ListSchedules(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	schedules, err := h.planner.ListSchedules(c.UserContext(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": schedules})
}

// CreateSchedule handles POST /api/schedules.
func (h *PlannerHandler) CreateSchedule(c *fiber.Ctx) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}
	var req dto.CreateScheduleRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	schedule, err := h.planner.CreateSchedule(c.UserContext(), domain.Schedule{
		UserID:    session.UserID,
		Day:       req.Day,
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": schedule})
}
