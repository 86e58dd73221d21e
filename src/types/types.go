package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

type Claims struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

type TransactionStatus string

const (
	TRANSACTION_SUCCEEDED          TransactionStatus = "succeeded"
	TRANSACTION_PENDING            TransactionStatus = "pending"
	TRANSACTION_FAILED             TransactionStatus = "failed"
	TRANSACTION_PARTIALLY_REFUNDED TransactionStatus = "partially_refunded"
	TRANSACTION_REFUNDED           TransactionStatus = "refunded"
)

type AuthorizationStatus string

const (
	AUTHORIZATION_PENDING  AuthorizationStatus = "pending"
	AUTHORIZATION_CAPTURED AuthorizationStatus = "captured"
	AUTHORIZATION_VOIDED   AuthorizationStatus = "voided"
)

type FailedPaymentStatus string

const (
	FAILED_PAYMENT_FAILED                  FailedPaymentStatus = "failed"
	FAILED_PAYMENT_CANCELED                FailedPaymentStatus = "canceled"
	FAILED_PAYMENT_REQUIRES_ACTION         FailedPaymentStatus = "requires_action"
	FAILED_PAYMENT_REQUIRES_PAYMENT_METHOD FailedPaymentStatus = "requires_payment_method"
)

type RefundStatus string

const (
	REFUND_PENDING   RefundStatus = "pending"
	REFUND_SUCCEEDED RefundStatus = "succeeded"
	REFUND_FAILED    RefundStatus = "failed"
)

type SubscriptionStatus string

const (
	SUBSCRIPTION_ACTIVE   SubscriptionStatus = "active"
	SUBSCRIPTION_PAST_DUE SubscriptionStatus = "past_due"
	SUBSCRIPTION_CANCELED SubscriptionStatus = "canceled"
	SUBSCRIPTION_TRIALING SubscriptionStatus = "trialing"
	SUBSCRIPTION_UNPAID   SubscriptionStatus = "unpaid"
)

type InvoiceStatus string

const (
	INVOICE_PAID          InvoiceStatus = "paid"
	INVOICE_OPEN          InvoiceStatus = "open"
	INVOICE_UNCOLLECTIBLE InvoiceStatus = "uncollectible"
	INVOICE_VOID          InvoiceStatus = "void"
	INVOICE_DRAFT         InvoiceStatus = "draft"
)

type BookingStatus string

const (
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_COMPLETED BookingStatus = "completed"
	BOOKING_CANCELED  BookingStatus = "canceled"
)

type ActorType string

const (
	ACTOR_STAFF  ActorType = "staff"
	ACTOR_MEMBER ActorType = "member"
	ACTOR_SYSTEM ActorType = "system"
)

type CaptureRequestBody struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	AmountCents     *int64 `json:"amount_cents,omitempty"`
}

type VoidAuthorizationRequestBody struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	Reason          string `json:"reason,omitempty"`
}

type RetryRequestBody struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

type CancelRequestBody struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

type RefundRequestBody struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	AmountCents     *int64 `json:"amount_cents"`
	// Amount is the dollar-string alternative to AmountCents, as typed by
	// staff into the partial refund field.
	Amount string `json:"amount,omitempty"`
	Reason string `json:"reason,omitempty" binding:"omitempty,refundreason"`
}

type AddNoteRequestBody struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	Note            string `json:"note" binding:"required"`
}

type CreateTransactionRequestBody struct {
	PaymentIntentID string   `json:"payment_intent_id,omitempty"`
	AmountCents     int64    `json:"amount_cents,omitempty"`
	Amount          string   `json:"amount,omitempty"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category,omitempty"`
	MemberEmail     string   `json:"member_email,omitempty"`
	MemberName      string   `json:"member_name,omitempty"`
	Metadata        Metadata `json:"metadata,omitempty"`
}

type SimpleRequestParams struct {
	ID string `uri:"id" binding:"required"`
}

type SubscriptionsQueryFilters struct {
	Status        string `form:"status,omitempty"`
	StartingAfter string `form:"starting_after,omitempty"`
	Limit         int    `form:"limit,omitempty"`
	Search        string `form:"search,omitempty"`
}

type InvoicesQueryFilters struct {
	Status        string `form:"status,omitempty"`
	StartDate     string `form:"start_date,omitempty"`
	EndDate       string `form:"end_date,omitempty"`
	StartingAfter string `form:"starting_after,omitempty"`
	Limit         int    `form:"limit,omitempty"`
	Search        string `form:"search,omitempty"`
}

type StaffActivityQueryFilters struct {
	Limit      int    `form:"limit,omitempty"`
	StaffEmail string `form:"staff_email,omitempty"`
	Actions    string `form:"actions,omitempty"`
	ActorType  string `form:"actor_type,omitempty"`
}

// DailySummary is the immutable per-day aggregate behind the summary view.
type DailySummary struct {
	Date                string           `json:"date"`
	TotalCollectedCents int64            `json:"total_collected_cents"`
	TransactionCount    int64            `json:"transaction_count"`
	Breakdown           map[string]int64 `json:"breakdown"`
}

type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

type ChangelogEntry struct {
	Version string   `json:"version"`
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Notes   []string `json:"notes"`
}
