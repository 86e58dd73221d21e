package common

import (
	"clubops/src/types"
	"fmt"
	"strings"
)

// ActionDisplay is the badge metadata for one audit action code.
type ActionDisplay struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

const (
	genericIcon  = "activity"
	genericColor = "gray"
)

// actionDisplays is open-ended: codes the backend starts emitting tomorrow
// must still render, so every lookup falls back to a humanized label.
var actionDisplays = map[string]ActionDisplay{
	"capture_payment":         {Label: "Captured Payment", Icon: "credit-card", Color: "green"},
	"void_authorization":      {Label: "Voided Authorization", Icon: "slash", Color: "orange"},
	"retry_payment":           {Label: "Retried Payment", Icon: "refresh-cw", Color: "blue"},
	"cancel_payment":          {Label: "Canceled Payment", Icon: "x-circle", Color: "red"},
	"refund_payment":          {Label: "Issued Refund", Icon: "rotate-ccw", Color: "purple"},
	"add_payment_note":        {Label: "Added Payment Note", Icon: "file-text", Color: "gray"},
	"create_transaction":      {Label: "Recorded Transaction", Icon: "dollar-sign", Color: "green"},
	"bulk_review_waivers":     {Label: "Reviewed Fee Waivers", Icon: "check-square", Color: "teal"},
	"sync_subscriptions":      {Label: "Synced Subscriptions", Icon: "download-cloud", Color: "blue"},
	"sync_invoices":           {Label: "Synced Invoices", Icon: "download-cloud", Color: "blue"},
	"send_dunning_notice":     {Label: "Sent Dunning Notice", Icon: "mail", Color: "yellow"},
	"update_member_card":      {Label: "Updated Card on File", Icon: "credit-card", Color: "blue"},
	"grant_fee_waiver":        {Label: "Granted Fee Waiver", Icon: "gift", Color: "teal"},
	"booking_balance_settled": {Label: "Settled Booking Balance", Icon: "check-circle", Color: "green"},
}

// noiseActions are read-only UI actions excluded from the activity stream.
var noiseActions = map[string]bool{
	"view_dashboard":     true,
	"view_transactions":  true,
	"view_member":        true,
	"view_booking":       true,
	"view_subscriptions": true,
	"view_invoices":      true,
	"view_audit_log":     true,
}

func IsNoiseAction(action string) bool {
	return noiseActions[action]
}

// HumanizeAction turns an unknown action code into a readable label:
// underscores to spaces, title case.
func HumanizeAction(action string) string {
	words := strings.Split(action, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func DisplayForAction(action string) ActionDisplay {
	if d, ok := actionDisplays[action]; ok {
		return d
	}
	return ActionDisplay{
		Label: HumanizeAction(action),
		Icon:  genericIcon,
		Color: genericColor,
	}
}

func formatCents(v int64) string {
	return fmt.Sprintf("$%.2f", float64(v)/100)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Common-field extractors, tried in priority order before anything
// action-specific. Generic extraction wins over the per-action switch
// whenever it finds any signal.
var commonEmailFields = []string{"member_email", "customer_email", "payer_email", "email"}
var commonAmountFields = []string{"amount_cents", "refund_amount_cents", "captured_amount_cents", "amount"}
var commonTextFields = []string{"description", "reason"}
var commonCountFields = []string{"count", "reviewed_count", "waiver_count", "item_count"}

func extractCommon(details types.JSONB) []string {
	var parts []string
	for _, f := range commonEmailFields {
		if s, ok := asString(details[f]); ok {
			parts = append(parts, s)
			break
		}
	}
	for _, f := range commonAmountFields {
		if n, ok := asInt64(details[f]); ok && n != 0 {
			parts = append(parts, formatCents(n))
			break
		}
	}
	for _, f := range commonTextFields {
		if s, ok := asString(details[f]); ok {
			parts = append(parts, s)
			break
		}
	}
	for _, f := range commonCountFields {
		if n, ok := asInt64(details[f]); ok && n != 0 {
			parts = append(parts, fmt.Sprintf("%d items", n))
			break
		}
	}
	return parts
}

func extractForAction(action string, details types.JSONB) []string {
	var parts []string
	switch action {
	case "sync_subscriptions", "sync_invoices":
		created, _ := asInt64(details["created"])
		updated, _ := asInt64(details["updated"])
		skipped, _ := asInt64(details["skipped"])
		if created != 0 || updated != 0 || skipped != 0 {
			parts = append(parts, fmt.Sprintf("%d created, %d updated, %d skipped", created, updated, skipped))
		}
	case "retry_payment":
		if n, ok := asInt64(details["retry_count"]); ok {
			parts = append(parts, fmt.Sprintf("attempt %d of %d", n, MaxRetryAttempts))
		}
	case "bulk_review_waivers":
		if n, ok := asInt64(details["stale_count"]); ok {
			parts = append(parts, fmt.Sprintf("%d waivers reviewed", n))
		}
	case "send_dunning_notice":
		if s, ok := asString(details["template"]); ok {
			parts = append(parts, s)
		}
	}
	return parts
}

// Last-resort field scan when neither the common extractors nor the
// action-specific ones produced output.
var fallbackFields = []string{"note", "status", "plan_name", "invoice_number", "resource_name", "session_id"}

func extractFallback(details types.JSONB) []string {
	var parts []string
	for _, f := range fallbackFields {
		if s, ok := asString(details[f]); ok {
			parts = append(parts, s)
		}
	}
	return parts
}

// ExtractDetails builds the one-line detail string for an audit entry.
// Layering: generic common fields first; the action-specific switch only
// runs when the generic pass found nothing; a broad field scan is last.
func ExtractDetails(action string, details types.JSONB) string {
	if len(details) == 0 {
		return ""
	}
	parts := extractCommon(details)
	if len(parts) == 0 {
		parts = extractForAction(action, details)
	}
	if len(parts) == 0 {
		parts = extractFallback(details)
	}
	return strings.Join(parts, " · ")
}
