// internal/models/audit.go
package models

import "github.com/google/uuid"

type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:255;not null"`
	ResourceType string     `json:"resource_type" gorm:"size:100;index"`
	ResourceID   *uuid.UUID `json:"resource_id" gorm:"type:uuid;index"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"size:512"`
	NewValues    JSONB      `json:"new_values" gorm:"type:jsonb"`
}
