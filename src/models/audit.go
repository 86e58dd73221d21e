package models

import (
	"clubops/src/types"
	"time"

	"github.com/google/uuid"
)

// AuditLog is append-only. The action vocabulary is open-ended; readers must
// not assume every code has a display mapping.
type AuditLog struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	ActorEmail   string          `gorm:"index" json:"actor_email,omitempty"`
	ActorName    string          `json:"actor_name,omitempty"`
	ActorType    types.ActorType `gorm:"index;default:'staff'" json:"actor_type"`
	Action       string          `gorm:"index" json:"action"`
	ResourceType string          `json:"resource_type,omitempty"`
	ResourceID   string          `json:"resource_id,omitempty"`
	ResourceName string          `json:"resource_name,omitempty"`
	Details      types.JSONB     `gorm:"type:jsonb" json:"details,omitempty"`
	IPAddress    string          `json:"ip_address,omitempty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime:nano;index" json:"created_at"`
}
