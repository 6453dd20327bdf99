package models

import "time"

// Session is the sessions row, keyed by the opaque token carried in the
// httpOnly cookie.
type Session struct {
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	CSRFToken string    `db:"csrf_token"`
	Role      string    `db:"role"`
	IP        string    `db:"ip"`
	UserAgent string    `db:"user_agent"`
	ExpiresAt time.Time `db:"expires_at"`
	IsValid   bool      `db:"is_valid"`
	CreatedAt time.Time `db:"created_at"`
}
