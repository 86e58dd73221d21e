package models

import (
	"clubops/src/types"

	"github.com/google/uuid"
)

type Refund struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	TransactionID   uuid.UUID          `gorm:"type:uuid" json:"transaction_id"`
	PaymentIntentId string             `gorm:"index" json:"payment_intent_id"`
	AmountCents     int64              `json:"amount_cents"`
	Reason          string             `json:"reason,omitempty"`
	StripeRefundId  *string            `json:"stripe_refund_id,omitempty"`
	Status          types.RefundStatus `gorm:"default:'pending'" json:"status"`
	IssuedBy        string             `json:"issued_by,omitempty"`

	Transaction Transaction `gorm:"foreignKey:transaction_id" json:"-"`

	types.Timestamps
}
