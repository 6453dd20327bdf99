package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	portsrepo "github.com/sarrafhq/sarraf-backend/internal/core/ports/repositories"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/utils"
)

const (
	sessionTokenBytes = 32
	minPasswordLength = 8
)

// GoogleCodeVerifier exchanges an OAuth authorization code and returns the
// verified email of the Google account.
type GoogleCodeVerifier interface {
	VerifyCode(ctx context.Context, code string) (string, error)
}

// AuthService verifies credentials and manages server-side sessions.
type AuthService struct {
	userRepo    portsrepo.UserRepositoryFacade
	sessionRepo portsrepo.SessionRepositoryFacade
	google      GoogleCodeVerifier
	audit       portssvc.AuditSvc
	logger      *slog.Logger
	sessionTTL  time.Duration
}

// NewAuthService creates a new AuthService. google may be nil when Google
// sign-in is not configured.
func NewAuthService(
	userRepo portsrepo.UserRepositoryFacade,
	sessionRepo portsrepo.SessionRepositoryFacade,
	google GoogleCodeVerifier,
	audit portssvc.AuditSvc,
	logger *slog.Logger,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		google:      google,
		audit:       audit,
		logger:      logger,
		sessionTTL:  sessionTTL,
	}
}

// Login verifies credentials and issues a session. Every credential failure
// returns the same unauthenticated error so a caller cannot probe which
// usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string, meta portssvc.LoginMeta) (*domain.Session, *domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, invalidCredentialsError()
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, invalidCredentialsError()
	}

	session, err := s.issueSession(ctx, user, meta)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// LoginWithGoogle exchanges an OAuth authorization code, verifies the ID
// token and issues a session for the matching existing user. Unknown emails
// are rejected, accounts are never auto-provisioned.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string, meta portssvc.LoginMeta) (*domain.Session, *domain.User, error) {
	if s.google == nil {
		return nil, nil, apperrors.NewAppError(http.StatusNotImplemented, "google sign-in is not configured", nil)
	}

	email, err := s.google.VerifyCode(ctx, code)
	if err != nil {
		s.logger.Warn("google code verification failed", slog.String("error", err.Error()))
		return nil, nil, invalidCredentialsError()
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, invalidCredentialsError()
	}
	if !user.IsActive {
		return nil, nil, invalidCredentialsError()
	}

	session, err := s.issueSession(ctx, user, meta)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// Logout invalidates the session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, err := s.sessionRepo.FindSessionByToken(ctx, token)
	if err != nil {
		return err
	}
	if err := s.sessionRepo.InvalidateSession(ctx, token); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     session.UserID,
		Action:     domain.AuditActionLogout,
		EntityType: "session",
		EntityID:   session.UserID,
	})
	return nil
}

// Refresh rotates the session token in place and extends the expiry. The
// CSRF token does not rotate with it.
func (s *AuthService) Refresh(ctx context.Context, token string) (*domain.Session, error) {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return nil, err
	}

	newToken, err := utils.GenerateSecureRandomString(sessionTokenBytes)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate session token", err)
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	if err := s.sessionRepo.RotateSession(ctx, token, newToken, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	session.Token = newToken
	session.ExpiresAt = expiresAt
	return session, nil
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every session of the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.NewAppError(http.StatusUnauthorized, "current password is incorrect", apperrors.ErrUnauthenticated)
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError(fmt.Sprintf("new password must be at least %d characters", minPasswordLength))
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.sessionRepo.InvalidateUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     userID,
		Action:     domain.AuditActionPasswordChange,
		EntityType: "user",
		EntityID:   userID,
	})
	return nil
}

// ValidateSession resolves an alive session by token.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "authentication required", apperrors.ErrUnauthenticated)
	}

	session, err := s.sessionRepo.FindSessionByToken(ctx, token)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "session not found", apperrors.ErrUnauthenticated)
	}
	if !session.Alive(time.Now()) {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "session expired", apperrors.ErrUnauthenticated)
	}
	return session, nil
}

// GetUser resolves the user behind a session.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// SessionTTL reports the configured session lifetime.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User, meta portssvc.LoginMeta) (*domain.Session, error) {
	token, err := utils.GenerateSecureRandomString(sessionTokenBytes)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate session token", err)
	}
	csrfToken, err := utils.GenerateSecureRandomString(sessionTokenBytes)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate csrf token", err)
	}

	now := time.Now()
	session := domain.Session{
		Token:     token,
		UserID:    user.UserID,
		CSRFToken: csrfToken,
		Role:      user.Role,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		ExpiresAt: now.Add(s.sessionTTL),
		IsValid:   true,
		CreatedAt: now,
	}
	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     user.UserID,
		Action:     domain.AuditActionLogin,
		EntityType: "session",
		EntityID:   user.UserID,
		NewValues:  map[string]interface{}{"ip": meta.IP, "userAgent": meta.UserAgent},
	})
	return &session, nil
}

func invalidCredentialsError() *apperrors.AppError {
	return apperrors.NewAppError(http.StatusUnauthorized, "invalid username or password", apperrors.ErrUnauthenticated)
}
