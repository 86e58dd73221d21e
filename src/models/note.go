package models

import (
	"clubops/src/types"

	"github.com/google/uuid"
)

type PaymentNote struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	PaymentIntentId string `gorm:"index" json:"payment_intent_id"`
	Note            string `json:"note"`
	AuthorEmail     string `json:"author_email,omitempty"`

	types.Timestamps
}
