package models

import "time"

// AuditLog is the audit_logs row. NewValues holds the serialized JSONB
// payload.
type AuditLog struct {
	AuditLogID string    `db:"audit_log_id"`
	UserID     string    `db:"user_id"`
	Action     string    `db:"action"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	NewValues  []byte    `db:"new_values"`
	CreatedAt  time.Time `db:"created_at"`
}
