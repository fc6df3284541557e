package worker

import (
	"github.com/spec-kit/deadline-tracker/internal/service"
)

// StartAuditWorker registers the audit log handlers with the dispatcher.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
