package repositories

import (
	"context"
	"time"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

// SessionReader defines read operations for sessions.
type SessionReader interface {
	// FindSessionByToken retrieves a session by its opaque token.
	FindSessionByToken(ctx context.Context, token string) (*domain.Session, error)
}

// SessionWriter defines write operations for sessions.
type SessionWriter interface {
	// SaveSession persists a new session.
	SaveSession(ctx context.Context, session domain.Session) error

	// RotateSession replaces a session's token and extends its expiry.
	RotateSession(ctx context.Context, oldToken, newToken string, expiresAt time.Time) error

	// InvalidateSession marks one session invalid.
	InvalidateSession(ctx context.Context, token string) error

	// InvalidateUserSessions marks every session of a user invalid.
	InvalidateUserSessions(ctx context.Context, userID string) error
}

// SessionRepositoryFacade combines session repository interfaces.
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
}
