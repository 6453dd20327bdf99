package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/utils/mapping"
)

// PgxAuditLogRepository implements the audit log port using pgxpool.
type PgxAuditLogRepository struct {
	BaseRepository
}

// NewPgxAuditLogRepository creates a new PgxAuditLogRepository.
func NewPgxAuditLogRepository(db *pgxpool.Pool) *PgxAuditLogRepository {
	return &PgxAuditLogRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveAuditLog appends one audit entry.
func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	m, err := mapping.ToModelAuditLog(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to serialize audit entry", err)
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO audit_logs (audit_log_id, user_id, action, entity_type, entity_id, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.AuditLogID, m.UserID, m.Action, m.EntityType, m.EntityID, m.NewValues, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save audit log", err)
	}
	return nil
}
