package common

import (
	"clubops/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeAction(t *testing.T) {
	assert.Equal(t, "Archive Member", HumanizeAction("archive_member"))
	assert.Equal(t, "Export Report", HumanizeAction("export_report"))
	assert.Equal(t, "Refund", HumanizeAction("refund"))
}

func TestDisplayForAction(t *testing.T) {
	d := DisplayForAction("capture_payment")
	assert.Equal(t, "Captured Payment", d.Label)
	assert.Equal(t, "credit-card", d.Icon)
	assert.Equal(t, "green", d.Color)

	// unknown codes still render with the generic badge
	d = DisplayForAction("merge_member_accounts")
	assert.Equal(t, "Merge Member Accounts", d.Label)
	assert.Equal(t, "activity", d.Icon)
	assert.Equal(t, "gray", d.Color)
}

func TestIsNoiseAction(t *testing.T) {
	assert.True(t, IsNoiseAction("view_dashboard"))
	assert.True(t, IsNoiseAction("view_audit_log"))
	assert.False(t, IsNoiseAction("view_settings"))
	assert.False(t, IsNoiseAction("refund_payment"))
}

func TestExtractDetailsCommonFields(t *testing.T) {
	detail := ExtractDetails("refund_payment", types.JSONB{
		"member_email": "pat@example.com",
		"amount_cents": int64(2550),
		"reason":       "duplicate charge",
	})
	assert.Equal(t, "pat@example.com · $25.50 · duplicate charge", detail)
}

func TestExtractDetailsFieldPriority(t *testing.T) {
	// member_email outranks the bare email field
	detail := ExtractDetails("capture_payment", types.JSONB{
		"email":        "fallback@example.com",
		"member_email": "primary@example.com",
	})
	assert.Equal(t, "primary@example.com", detail)

	// amount_cents outranks amount
	detail = ExtractDetails("capture_payment", types.JSONB{
		"amount":       int64(100),
		"amount_cents": int64(200),
	})
	assert.Equal(t, "$2.00", detail)
}

func TestExtractDetailsGenericWinsOverActionSpecific(t *testing.T) {
	// sync details carry a count field, so the generic extractor produces
	// output and the per-action formatter never runs
	detail := ExtractDetails("sync_subscriptions", types.JSONB{
		"count":   int64(4),
		"created": int64(2),
		"updated": int64(1),
		"skipped": int64(1),
	})
	assert.Equal(t, "4 items", detail)
}

func TestExtractDetailsActionSpecific(t *testing.T) {
	detail := ExtractDetails("sync_subscriptions", types.JSONB{
		"created": int64(3),
		"updated": int64(2),
		"skipped": int64(7),
	})
	assert.Equal(t, "3 created, 2 updated, 7 skipped", detail)

	detail = ExtractDetails("retry_payment", types.JSONB{
		"retry_count": int64(2),
	})
	assert.Equal(t, "attempt 2 of 3", detail)
}

func TestExtractDetailsFallbackFields(t *testing.T) {
	detail := ExtractDetails("add_payment_note", types.JSONB{
		"note": "member called about this charge",
	})
	assert.Equal(t, "member called about this charge", detail)

	detail = ExtractDetails("booking_balance_settled", types.JSONB{
		"resource_name": "Court 3",
		"status":        "settled",
	})
	assert.Equal(t, "settled · Court 3", detail)
}

func TestExtractDetailsEmpty(t *testing.T) {
	assert.Equal(t, "", ExtractDetails("capture_payment", nil))
	assert.Equal(t, "", ExtractDetails("capture_payment", types.JSONB{}))
	assert.Equal(t, "", ExtractDetails("capture_payment", types.JSONB{"unrelated": true}))
}

func TestExtractDetailsJSONNumbers(t *testing.T) {
	// details round-tripped through jsonb come back as float64
	detail := ExtractDetails("refund_payment", types.JSONB{
		"amount_cents": float64(1250),
	})
	assert.Equal(t, "$12.50", detail)
}
