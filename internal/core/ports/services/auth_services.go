package services

import (
	"context"
	"time"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

// LoginMeta carries the request attributes bound into a new session.
type LoginMeta struct {
	IP        string
	UserAgent string
}

// AuthSvcFacade manages credentials and server-side sessions.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a session. A credential failure
	// returns ErrUnauthenticated so the handler can count it against the
	// lockout.
	Login(ctx context.Context, username, password string, meta LoginMeta) (*domain.Session, *domain.User, error)

	// LoginWithGoogle exchanges an OAuth authorization code, verifies the ID
	// token and issues a session for the matching existing user.
	LoginWithGoogle(ctx context.Context, code string, meta LoginMeta) (*domain.Session, *domain.User, error)

	// Logout invalidates the session.
	Logout(ctx context.Context, token string) error

	// Refresh rotates the session token and extends its expiry, returning
	// the rotated session.
	Refresh(ctx context.Context, token string) (*domain.Session, error)

	// ChangePassword verifies the current password, stores the new hash and
	// invalidates every session of the user.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error

	// ValidateSession resolves an alive session by token.
	ValidateSession(ctx context.Context, token string) (*domain.Session, error)

	// GetUser resolves the user behind a session.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// SessionTTL reports the configured session lifetime.
	SessionTTL() time.Duration
}

// APITokenSvc mints and validates JWT credentials for programmatic clients.
type APITokenSvc interface {
	// MintToken issues a signed token for a user.
	MintToken(ctx context.Context, userID string) (string, error)

	// ValidateToken verifies a token and returns the subject user id.
	ValidateToken(ctx context.Context, token string) (string, error)
}
