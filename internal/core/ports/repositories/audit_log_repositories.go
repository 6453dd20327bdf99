package repositories

import (
	"context"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

// AuditLogWriter defines the append-only audit log operation.
type AuditLogWriter interface {
	// SaveAuditLog appends one audit entry.
	SaveAuditLog(ctx context.Context, entry domain.AuditLogEntry) error
}
