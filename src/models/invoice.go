package models

import (
	"clubops/src/types"
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	StripeInvoiceId string              `gorm:"uniqueIndex" json:"stripe_invoice_id"`
	Number          string              `gorm:"index" json:"number,omitempty"`
	MemberID        *uint               `json:"member_id,omitempty"`
	MemberName      string              `json:"member_name,omitempty"`
	MemberEmail     string              `gorm:"index" json:"member_email,omitempty"`
	AmountDueCents  int64               `json:"amount_due_cents"`
	AmountPaidCents int64               `json:"amount_paid_cents"`
	Status          types.InvoiceStatus `gorm:"index" json:"status"`
	DueDate         *time.Time          `json:"due_date,omitempty"`

	Member *Member `gorm:"foreignKey:member_id" json:"-"`

	types.Timestamps
}
