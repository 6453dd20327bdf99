package domain

import "time"

// Session is a server-side login record keyed by an opaque token. A session
// stops authenticating requests when it expires, is invalidated at logout,
// or is revoked by a password change.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"userID"`
	CSRFToken string    `json:"-"`
	Role      Role      `json:"role"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsValid   bool      `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Alive reports whether the session still authenticates requests at t.
func (s *Session) Alive(t time.Time) bool {
	return s.IsValid && s.UserID != "" && t.Before(s.ExpiresAt)
}
