package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	portsrepo "github.com/sarrafhq/sarraf-backend/internal/core/ports/repositories"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

// AuditService appends audit entries. Recording is fire-and-forget: a failed
// write is logged at Warn and swallowed so auditing can never fail the
// operation being audited.
type AuditService struct {
	auditRepo portsrepo.AuditLogWriter
	logger    *slog.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditLogWriter, logger *slog.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record appends one audit entry, filling id and timestamp when absent.
func (s *AuditService) Record(ctx context.Context, entry domain.AuditLogEntry) {
	if entry.AuditLogID == "" {
		entry.AuditLogID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			slog.String("action", entry.Action),
			slog.String("entity_type", entry.EntityType),
			slog.String("entity_id", entry.EntityID),
			slog.String("error", err.Error()),
		)
	}
}
