package domain

import "time"

// Audit actions recorded against price, settings and auth entities.
const (
	AuditActionCreate         = "create"
	AuditActionRevise         = "revise"
	AuditActionAmend          = "amend"
	AuditActionDelete         = "delete"
	AuditActionLogin          = "login"
	AuditActionLogout         = "logout"
	AuditActionPasswordChange = "password_change"
	AuditActionCSRFMismatch   = "csrf_mismatch"
	AuditActionRoleRejected   = "role_rejected"
	AuditActionSettingsReset  = "settings_reset"
)

// AuditLogEntry is an append-only trace of an administrative action.
// Recording one is fire-and-forget: failures never surface to the caller.
type AuditLogEntry struct {
	AuditLogID string                 `json:"auditLogID"`
	UserID     string                 `json:"userID"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entityType"`
	EntityID   string                 `json:"entityID"`
	NewValues  map[string]interface{} `json:"newValues,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}
