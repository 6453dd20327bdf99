package services

import (
	"context"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

// AuditSvc appends audit entries. Record is fire-and-forget: failures are
// logged by the implementation and never returned, so auditing can never
// block the primary operation.
type AuditSvc interface {
	Record(ctx context.Context, entry domain.AuditLogEntry)
}
