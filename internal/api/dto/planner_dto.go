package dto

import "github.com/spec-kit/deadline-tracker/internal/domain"

// CreateTaskRequest payload.
type CreateTaskRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Completed bool   `json:"completed"`
}

// CreateDeadlineRequest payload. due_date is a calendar date, YYYY-MM-DD.
type CreateDeadlineRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	DueDate string `json:"due_date" validate:"required,isodate"`
}

// CreateScheduleRequest payload.
type CreateScheduleRequest struct {
	Day       string `json:"day" validate:"required,isodate"`
	Title     string `json:"title" validate:"required,max=200"`
	StartTime string `json:"start_time" validate:"omitempty,clock"`
	EndTime   string `json:"end_time" validate:"omitempty,clock"`
}

// OverviewResponse lists what the signed in user has on their plate.
type OverviewResponse struct {
	User      UserResponse      `json:"user"`
	Tasks     []domain.Task     `json:"tasks"`
	Deadlines []domain.Deadline `json:"deadlines"`
}
