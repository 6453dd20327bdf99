package mapping

import (
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/models"
)

// ToModelSession converts a domain Session to a model Session
func ToModelSession(d domain.Session) models.Session {
	return models.Session{
		Token:     d.Token,
		UserID:    d.UserID,
		CSRFToken: d.CSRFToken,
		Role:      string(d.Role),
		IP:        d.IP,
		UserAgent: d.UserAgent,
		ExpiresAt: d.ExpiresAt,
		IsValid:   d.IsValid,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainSession converts a model Session to a domain Session
func ToDomainSession(m models.Session) domain.Session {
	return domain.Session{
		Token:     m.Token,
		UserID:    m.UserID,
		CSRFToken: m.CSRFToken,
		Role:      domain.Role(m.Role),
		IP:        m.IP,
		UserAgent: m.UserAgent,
		ExpiresAt: m.ExpiresAt,
		IsValid:   m.IsValid,
		CreatedAt: m.CreatedAt,
	}
}
