package models

import (
	"clubops/src/types"
	"time"

	"github.com/google/uuid"
)

type FailedPayment struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	PaymentIntentId    string                    `gorm:"uniqueIndex" json:"payment_intent_id"`
	MemberID           *uint                     `json:"member_id,omitempty"`
	AmountCents        int64                     `json:"amount_cents"`
	Description        string                    `json:"description,omitempty"`
	Status             types.FailedPaymentStatus `gorm:"default:'failed'" json:"status"`
	FailureReason      *string                   `json:"failure_reason,omitempty"`
	RetryCount         int                       `gorm:"default:0" json:"retry_count"`
	LastRetryAt        *time.Time                `json:"last_retry_at,omitempty"`
	RequiresCardUpdate bool                      `gorm:"default:false" json:"requires_card_update"`
	DunningNotifiedAt  *time.Time                `json:"dunning_notified_at,omitempty"`

	Member *Member `gorm:"foreignKey:member_id" json:"member,omitempty"`

	types.Timestamps
}
