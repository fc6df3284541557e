package dto

import "github.com/spec-kit/deadline-tracker/internal/domain"

// TimetableEntry is one deadline placed in a bucket.
type TimetableEntry struct {
	DeadlineID string `json:"deadline_id,omitempty"`
	Subject    string `json:"subject"`
	DueDate    string `json:"due_date"`
	DaysLeft   int    `json:"days_left"`
}

// TimetableResponse mirrors the timetable page.
type TimetableResponse struct {
	User      UserResponse      `json:"user"`
	Today     string            `json:"today"`
	Daily     []TimetableEntry  `json:"daily"`
	Weekly    []TimetableEntry  `json:"weekly"`
	Monthly   []TimetableEntry  `json:"monthly"`
	Schedules []domain.Schedule `json:"schedules"`
}

// ExportRequest is the body of POST /generate-pdf.
type ExportRequest struct {
	HTMLContent string `json:"html_content"`
	Mode        string `json:"mode"`
}
