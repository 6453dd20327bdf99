package dto

import (
	"time"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleExchangeCodeRequest carries the OAuth authorization code from the
// frontend.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// SessionResponse is the identity snapshot returned by login, refresh and
// the session endpoint.
type SessionResponse struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToSessionResponse builds the identity snapshot for a session and its user.
func ToSessionResponse(s *domain.Session, u *domain.User) SessionResponse {
	resp := SessionResponse{
		UserID:    s.UserID,
		Role:      string(s.Role),
		ExpiresAt: s.ExpiresAt,
	}
	if u != nil {
		resp.Username = u.Username
		resp.Name = u.Name
	}
	return resp
}

// CSRFResponse returns the token mutating requests must echo.
type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}
