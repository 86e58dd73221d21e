package models

import (
	"clubops/src/types"

	"github.com/google/uuid"
)

type Transaction struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	PaymentIntentId     *string                 `gorm:"index" json:"payment_intent_id,omitempty"`
	AmountCents         int64                   `json:"amount_cents"`
	AmountRefundedCents int64                   `json:"amount_refunded_cents,omitempty"`
	Currency            string                  `gorm:"default:'usd'" json:"currency,omitempty"`
	Status              types.TransactionStatus `gorm:"default:'pending'" json:"status"`
	Description         string                  `json:"description,omitempty"`
	Category            string                  `json:"category,omitempty"`
	MemberID            *uint                   `json:"member_id,omitempty"`
	Metadata            types.JSONB             `gorm:"type:jsonb" json:"metadata,omitempty"`

	Member *Member `gorm:"foreignKey:member_id" json:"member,omitempty"`

	types.Timestamps
}
