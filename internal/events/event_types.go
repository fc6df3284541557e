package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered    EventType = "user_registered"
	EventUserLoggedIn      EventType = "user_logged_in"
	EventDeadlineCreated   EventType = "deadline_created"
	EventTimetableExported EventType = "timetable_exported"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, userID int64, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// DeadlineCreatedPayload payload.
type DeadlineCreatedPayload struct {
	DeadlineID string `json:"deadline_id"`
	Subject    string `json:"subject"`
	DueDate    string `json:"due_date"`
}

// TimetableExportedPayload payload.
type TimetableExportedPayload struct {
	Mode       string `json:"mode"`
	Filename   string `json:"filename"`
	SizeBytes  int    `json:"size_bytes"`
	ArchiveKey string `json:"archive_key,omitempty"`
}
