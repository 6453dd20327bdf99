package services_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/core/services"
	"github.com/sarrafhq/sarraf-backend/internal/utils"
)

// MockUserRepository is a mock of UserRepositoryFacade.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

// MockSessionRepository is a mock of SessionRepositoryFacade.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindSessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, session domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) RotateSession(ctx context.Context, oldToken, newToken string, expiresAt time.Time) error {
	args := m.Called(ctx, oldToken, newToken, expiresAt)
	return args.Error(0)
}

func (m *MockSessionRepository) InvalidateSession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionRepository) InvalidateUserSessions(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockGoogleVerifier is a mock of GoogleCodeVerifier.
type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) VerifyCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

type AuthServiceTestSuite struct {
	suite.Suite
	userRepo    *MockUserRepository
	sessionRepo *MockSessionRepository
	google      *MockGoogleVerifier
	audit       *MockAuditService
	service     *services.AuthService
	ctx         context.Context
	meta        portssvc.LoginMeta
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.userRepo = new(MockUserRepository)
	s.sessionRepo = new(MockSessionRepository)
	s.google = new(MockGoogleVerifier)
	s.audit = new(MockAuditService)
	s.service = services.NewAuthService(s.userRepo, s.sessionRepo, s.google, s.audit, slog.Default(), 12*time.Hour)
	s.ctx = context.Background()
	s.meta = portssvc.LoginMeta{IP: "203.0.113.7", UserAgent: "test-agent"}
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) activeUser(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	s.Require().NoError(err)
	return &domain.User{
		UserID:       "user-1",
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
}

func (s *AuthServiceTestSuite) assertUnauthenticated(err error) {
	s.Require().Error(err)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal(http.StatusUnauthorized, appErr.Status)
	s.Equal("invalid username or password", appErr.Message)
}

func (s *AuthServiceTestSuite) TestLoginIssuesSessionAndAudits() {
	user := s.activeUser("correct horse")
	s.userRepo.On("FindUserByUsername", s.ctx, "admin").Return(user, nil)

	var saved domain.Session
	s.sessionRepo.On("SaveSession", s.ctx, mock.AnythingOfType("domain.Session")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Session) }).
		Return(nil)
	s.audit.On("Record", s.ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.AuditActionLogin && e.UserID == "user-1"
	})).Return()

	session, got, err := s.service.Login(s.ctx, "admin", "correct horse", s.meta)

	s.Require().NoError(err)
	s.Equal("user-1", got.UserID)
	s.Len(session.Token, 64)
	s.Len(session.CSRFToken, 64)
	s.NotEqual(session.Token, session.CSRFToken)
	s.Equal(domain.RoleAdmin, session.Role)
	s.Equal("203.0.113.7", session.IP)
	s.True(session.IsValid)
	s.True(session.ExpiresAt.After(time.Now().Add(11 * time.Hour)))
	s.Equal(saved.Token, session.Token)
	s.audit.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestLoginWrongPasswordIsUniform() {
	user := s.activeUser("correct horse")
	s.userRepo.On("FindUserByUsername", s.ctx, "admin").Return(user, nil)

	_, _, err := s.service.Login(s.ctx, "admin", "wrong", s.meta)

	s.assertUnauthenticated(err)
	s.sessionRepo.AssertNotCalled(s.T(), "SaveSession", mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestLoginUnknownUserIsUniform() {
	s.userRepo.On("FindUserByUsername", s.ctx, "ghost").
		Return(nil, apperrors.NewNotFoundError("user not found"))

	_, _, err := s.service.Login(s.ctx, "ghost", "whatever", s.meta)

	s.assertUnauthenticated(err)
}

func (s *AuthServiceTestSuite) TestLoginInactiveUserIsUniform() {
	user := s.activeUser("correct horse")
	user.IsActive = false
	s.userRepo.On("FindUserByUsername", s.ctx, "admin").Return(user, nil)

	_, _, err := s.service.Login(s.ctx, "admin", "correct horse", s.meta)

	s.assertUnauthenticated(err)
}

func (s *AuthServiceTestSuite) TestLoginWithGoogleMatchesExistingUser() {
	user := s.activeUser("unused")
	s.google.On("VerifyCode", s.ctx, "auth-code").Return("admin@example.com", nil)
	s.userRepo.On("FindUserByEmail", s.ctx, "admin@example.com").Return(user, nil)
	s.sessionRepo.On("SaveSession", s.ctx, mock.Anything).Return(nil)
	s.audit.On("Record", s.ctx, mock.Anything).Return()

	session, got, err := s.service.LoginWithGoogle(s.ctx, "auth-code", s.meta)

	s.Require().NoError(err)
	s.Equal("user-1", got.UserID)
	s.Len(session.Token, 64)
}

func (s *AuthServiceTestSuite) TestLoginWithGoogleUnknownEmailIsRejected() {
	s.google.On("VerifyCode", s.ctx, "auth-code").Return("stranger@example.com", nil)
	s.userRepo.On("FindUserByEmail", s.ctx, "stranger@example.com").
		Return(nil, apperrors.NewNotFoundError("user not found"))

	_, _, err := s.service.LoginWithGoogle(s.ctx, "auth-code", s.meta)

	s.assertUnauthenticated(err)
	s.userRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestLoginWithGoogleNotConfigured() {
	service := services.NewAuthService(s.userRepo, s.sessionRepo, nil, s.audit, slog.Default(), time.Hour)

	_, _, err := service.LoginWithGoogle(s.ctx, "auth-code", s.meta)

	s.Require().Error(err)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal(http.StatusNotImplemented, appErr.Status)
}

func (s *AuthServiceTestSuite) TestRefreshRotatesTokenOnly() {
	session := &domain.Session{
		Token:     "old-token",
		UserID:    "user-1",
		CSRFToken: "csrf-token",
		Role:      domain.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
		IsValid:   true,
	}
	s.sessionRepo.On("FindSessionByToken", s.ctx, "old-token").Return(session, nil)
	s.sessionRepo.On("RotateSession", s.ctx, "old-token", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil)

	refreshed, err := s.service.Refresh(s.ctx, "old-token")

	s.Require().NoError(err)
	s.NotEqual("old-token", refreshed.Token)
	s.Len(refreshed.Token, 64)
	s.Equal("csrf-token", refreshed.CSRFToken)
	s.True(refreshed.ExpiresAt.After(time.Now().Add(11 * time.Hour)))
}

func (s *AuthServiceTestSuite) TestRefreshRejectsExpiredSession() {
	session := &domain.Session{
		Token:     "old-token",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
		IsValid:   true,
	}
	s.sessionRepo.On("FindSessionByToken", s.ctx, "old-token").Return(session, nil)

	_, err := s.service.Refresh(s.ctx, "old-token")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
	s.sessionRepo.AssertNotCalled(s.T(), "RotateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestLogoutInvalidatesAndAudits() {
	session := &domain.Session{Token: "tok", UserID: "user-1", IsValid: true, ExpiresAt: time.Now().Add(time.Hour)}
	s.sessionRepo.On("FindSessionByToken", s.ctx, "tok").Return(session, nil)
	s.sessionRepo.On("InvalidateSession", s.ctx, "tok").Return(nil)
	s.audit.On("Record", s.ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.AuditActionLogout
	})).Return()

	err := s.service.Logout(s.ctx, "tok")

	s.Require().NoError(err)
	s.sessionRepo.AssertExpectations(s.T())
	s.audit.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestChangePasswordRevokesAllSessions() {
	user := s.activeUser("old password")
	s.userRepo.On("FindUserByID", s.ctx, "user-1").Return(user, nil)
	s.userRepo.On("UpdatePasswordHash", s.ctx, "user-1", mock.AnythingOfType("string")).Return(nil)
	s.sessionRepo.On("InvalidateUserSessions", s.ctx, "user-1").Return(nil)
	s.audit.On("Record", s.ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.AuditActionPasswordChange
	})).Return()

	err := s.service.ChangePassword(s.ctx, "user-1", "old password", "brand new password")

	s.Require().NoError(err)
	s.sessionRepo.AssertExpectations(s.T())
	s.audit.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestChangePasswordRejectsWrongCurrent() {
	user := s.activeUser("old password")
	s.userRepo.On("FindUserByID", s.ctx, "user-1").Return(user, nil)

	err := s.service.ChangePassword(s.ctx, "user-1", "not it", "brand new password")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
	s.userRepo.AssertNotCalled(s.T(), "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestChangePasswordRejectsShortPassword() {
	user := s.activeUser("old password")
	s.userRepo.On("FindUserByID", s.ctx, "user-1").Return(user, nil)

	err := s.service.ChangePassword(s.ctx, "user-1", "old password", "short")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AuthServiceTestSuite) TestValidateSessionRejectsEmptyToken() {
	_, err := s.service.ValidateSession(s.ctx, "")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (s *AuthServiceTestSuite) TestValidateSessionRejectsInvalidated() {
	session := &domain.Session{Token: "tok", UserID: "user-1", IsValid: false, ExpiresAt: time.Now().Add(time.Hour)}
	s.sessionRepo.On("FindSessionByToken", s.ctx, "tok").Return(session, nil)

	_, err := s.service.ValidateSession(s.ctx, "tok")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
}
