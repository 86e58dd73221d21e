package models

import (
	"clubops/src/types"
	"time"

	"github.com/google/uuid"
)

// PendingAuthorization mirrors a hold awaiting capture or void. Terminal
// transitions: captured (becomes a Transaction) or voided (no charge).
type PendingAuthorization struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	PaymentIntentId string                    `gorm:"uniqueIndex" json:"payment_intent_id"`
	MemberID        *uint                     `json:"member_id,omitempty"`
	AmountCents     int64                     `json:"amount_cents"`
	Description     string                    `json:"description,omitempty"`
	ExpiresAt       time.Time                 `json:"expires_at"`
	Status          types.AuthorizationStatus `gorm:"default:'pending'" json:"status"`
	VoidReason      *string                   `json:"void_reason,omitempty"`

	Member *Member `gorm:"foreignKey:member_id" json:"member,omitempty"`

	types.Timestamps
}
