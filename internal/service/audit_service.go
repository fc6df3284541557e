package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/deadline-tracker/internal/events"
)

// AuditService writes a log line for every domain event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

var auditMessages = map[events.EventType]string{
	events.EventUserRegistered:    "UserRegistered",
	events.EventUserLoggedIn:      "UserLoggedIn",
	events.EventDeadlineCreated:   "DeadlineCreated",
	events.EventTimetableExported: "TimetableExported",
}

// RegisterHandlers subscribes the audit log to every event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.SubscribeAll(a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	msg, ok := auditMessages[event.Type]
	if !ok {
		msg = string(event.Type)
	}
	fields := eventFields(event)
	if p, ok := event.Payload.(events.TimetableExportedPayload); ok && p.ArchiveKey == "" {
		fields = append(fields, zap.Bool("archived", false))
	}
	a.logger.Info(msg, fields...)
	return nil
}

func eventFields(event events.Event) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.Time("at", event.Timestamp),
	}
	if event.UserID != 0 {
		fields = append(fields, zap.Int64("user_id", event.UserID))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	return fields
}
