package entity

import (
	"encoding/json"
	"time"
)

// Niveles de registro de auditoría.
const (
	AuditLevelInfo     = "INFO"
	AuditLevelWarn     = "WARN"
	AuditLevelError    = "ERROR"
	AuditLevelSecurity = "SECURITY"
)

// AuditEntry registro persistido de una acción relevante.
type AuditEntry struct {
	ID         string
	Level      string
	Action     string
	UserID     string
	EntityType string
	EntityID   string
	Details    string
	OldValue   json.RawMessage
	NewValue   json.RawMessage
	CreatedAt  time.Time
}
