package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/models"
	"github.com/sarrafhq/sarraf-backend/internal/utils/mapping"
)

// PgxSessionRepository implements the session ports using pgxpool.
type PgxSessionRepository struct {
	BaseRepository
}

// NewPgxSessionRepository creates a new PgxSessionRepository.
func NewPgxSessionRepository(db *pgxpool.Pool) *PgxSessionRepository {
	return &PgxSessionRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindSessionByToken retrieves a session by its opaque token.
func (r *PgxSessionRepository) FindSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	query := `
		SELECT token, user_id, csrf_token, role, ip, user_agent, expires_at, is_valid, created_at
		FROM sessions
		WHERE token = $1;
	`

	var m models.Session
	err := r.Pool.QueryRow(ctx, query, token).Scan(
		&m.Token, &m.UserID, &m.CSRFToken, &m.Role, &m.IP, &m.UserAgent,
		&m.ExpiresAt, &m.IsValid, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get session", err)
	}

	d := mapping.ToDomainSession(m)
	return &d, nil
}

// SaveSession persists a new session.
func (r *PgxSessionRepository) SaveSession(ctx context.Context, session domain.Session) error {
	m := mapping.ToModelSession(session)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO sessions (token, user_id, csrf_token, role, ip, user_agent, expires_at, is_valid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.Token, m.UserID, m.CSRFToken, m.Role, m.IP, m.UserAgent,
		m.ExpiresAt, m.IsValid, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save session", err)
	}
	return nil
}

// RotateSession replaces a session's token and extends its expiry.
func (r *PgxSessionRepository) RotateSession(ctx context.Context, oldToken, newToken string, expiresAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE sessions
		SET token = $1, expires_at = $2
		WHERE token = $3 AND is_valid`,
		newToken, expiresAt, oldToken,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to rotate session", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("session not found")
	}
	return nil
}

// InvalidateSession marks one session invalid.
func (r *PgxSessionRepository) InvalidateSession(ctx context.Context, token string) error {
	_, err := r.Pool.Exec(ctx, `UPDATE sessions SET is_valid = FALSE WHERE token = $1`, token)
	if err != nil {
		return apperrors.NewAppError(500, "failed to invalidate session", err)
	}
	return nil
}

// InvalidateUserSessions marks every session of a user invalid. Used on
// password change.
func (r *PgxSessionRepository) InvalidateUserSessions(ctx context.Context, userID string) error {
	_, err := r.Pool.Exec(ctx, `UPDATE sessions SET is_valid = FALSE WHERE user_id = $1`, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to invalidate user sessions", err)
	}
	return nil
}
