package mapping

import (
	"encoding/json"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/models"
)

// ToModelAuditLog converts a domain AuditLogEntry to a model AuditLog,
// serializing NewValues to JSON.
func ToModelAuditLog(d domain.AuditLogEntry) (models.AuditLog, error) {
	var payload []byte
	if d.NewValues != nil {
		b, err := json.Marshal(d.NewValues)
		if err != nil {
			return models.AuditLog{}, err
		}
		payload = b
	}
	return models.AuditLog{
		AuditLogID: d.AuditLogID,
		UserID:     d.UserID,
		Action:     d.Action,
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		NewValues:  payload,
		CreatedAt:  d.CreatedAt,
	}, nil
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLogEntry.
func ToDomainAuditLog(m models.AuditLog) domain.AuditLogEntry {
	var values map[string]interface{}
	if len(m.NewValues) > 0 {
		_ = json.Unmarshal(m.NewValues, &values)
	}
	return domain.AuditLogEntry{
		AuditLogID: m.AuditLogID,
		UserID:     m.UserID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		NewValues:  values,
		CreatedAt:  m.CreatedAt,
	}
}
