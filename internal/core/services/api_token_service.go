package services

import (
	"context"
	"net/http"
	"time"

	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	portsrepo "github.com/sarrafhq/sarraf-backend/internal/core/ports/repositories"
	"github.com/sarrafhq/sarraf-backend/internal/utils"
)

// APITokenService issues and validates JWT credentials for programmatic
// clients that cannot carry cookies.
type APITokenService struct {
	userRepo portsrepo.UserReader
	secret   string
	issuer   string
	expiry   time.Duration
}

// NewAPITokenService creates a new APITokenService.
func NewAPITokenService(userRepo portsrepo.UserReader, secret, issuer string, expiry time.Duration) *APITokenService {
	return &APITokenService{
		userRepo: userRepo,
		secret:   secret,
		issuer:   issuer,
		expiry:   expiry,
	}
}

// MintToken issues a signed token for a user.
func (s *APITokenService) MintToken(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", apperrors.NewAppError(http.StatusForbidden, "user is inactive", apperrors.ErrForbidden)
	}
	return utils.GenerateJWT(user.UserID, s.secret, s.expiry, s.issuer)
}

// ValidateToken verifies a token and returns the subject user id.
func (s *APITokenService) ValidateToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.secret)
	if err != nil {
		return "", apperrors.NewAppError(http.StatusUnauthorized, "invalid api token", apperrors.ErrUnauthenticated)
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return "", apperrors.NewAppError(http.StatusUnauthorized, "invalid api token issuer", apperrors.ErrUnauthenticated)
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		return "", apperrors.NewAppError(http.StatusUnauthorized, "unknown api token subject", apperrors.ErrUnauthenticated)
	}
	if !user.IsActive {
		return "", apperrors.NewAppError(http.StatusUnauthorized, "user is inactive", apperrors.ErrUnauthenticated)
	}
	return user.UserID, nil
}
