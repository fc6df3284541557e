package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deadline-tracker/internal/api/http/handlers"
	"github.com/spec-kit/deadline-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Planner           *handlers.PlannerHandler
	Timetable         *handlers.TimetableHandler
	Export            *handlers.ExportHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	// public: the browser posts the markup it already shows
	app.Post("/generate-pdf", cfg.Export.GeneratePDF)

	app.Get("/timetable", cfg.SessionMiddleware.Handle, cfg.Timetable.Page)

	api := app.Group("/api", cfg.SessionMiddleware.Handle)
	api.Get("/overview", cfg.Planner.Overview)
	api.Get("/tasks", cfg.Planner.ListTasks)
	api.Post("/tasks", cfg.Planner.CreateTask)
	api.Get("/deadlines", cfg.Planner.ListDeadlines)
	api.Post("/deadlines", cfg.Planner.CreateDeadline)
	api.Get("/schedules", cfg.Planner.ListSchedules)
	api.Post("/schedules", cfg.Planner.CreateSchedule)
	api.Get("/timetable", cfg.Timetable.JSON)
	api.Get("/timetable/pdf", cfg.Export.TimetablePDF)
}
