package models

import (
	"clubops/src/types"
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	StripeSubscriptionId string                   `gorm:"uniqueIndex" json:"stripe_subscription_id"`
	MemberID             *uint                    `json:"member_id,omitempty"`
	MemberName           string                   `json:"member_name,omitempty"`
	MemberEmail          string                   `gorm:"index" json:"member_email,omitempty"`
	PlanName             string                   `json:"plan_name,omitempty"`
	AmountCents          int64                    `json:"amount_cents"`
	Status               types.SubscriptionStatus `gorm:"index" json:"status"`
	CurrentPeriodEnd     *time.Time               `json:"current_period_end,omitempty"`

	Member *Member `gorm:"foreignKey:member_id" json:"-"`

	types.Timestamps
}
