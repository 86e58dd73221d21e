package common

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// MaxRetryAttempts caps operator-driven retries of a failed charge.
const MaxRetryAttempts = 3

const DefaultReason = "No reason provided"

var RefundReasons = []string{
	"Customer request",
	"Duplicate charge",
	"Service not provided",
	"Billing error",
	"Other",
}

var (
	ErrRefundAmountInvalid  = errors.New("refund amount must be greater than zero")
	ErrRefundExceedsCharge  = errors.New("refund amount exceeds the remaining refundable amount")
	ErrCaptureAmountInvalid = errors.New("capture amount must be greater than zero")
	ErrCaptureExceedsHold   = errors.New("capture amount exceeds the authorized amount")
	ErrRetryNotAllowed      = errors.New("payment is not eligible for retry")
)

// CanRetry reports whether an operator may retry a failed charge. Payments
// that need a new card on file are never retryable.
func CanRetry(requiresCardUpdate bool, retryCount int) bool {
	return !requiresCardUpdate && retryCount < MaxRetryAttempts
}

// ClassifyExpiry derives the time-to-expiry badge for a pending
// authorization. The label is cosmetic only and never gates capture or void.
func ClassifyExpiry(expiresAt, now time.Time) (label string, urgent bool) {
	diff := expiresAt.Sub(now)
	if diff <= 0 {
		return "Expired", true
	}
	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, hours), days <= 1
}

// ParseDollarAmount converts a decimal dollar string to integer cents.
func ParseDollarAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("amount is required")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	cents := int64(math.Round(f * 100))
	if cents <= 0 {
		return 0, errors.New("amount must be greater than zero")
	}
	return cents, nil
}

// ValidateRefundAmount checks a partial-refund request against the original
// charge. A nil requested amount means a full refund of the remainder and is
// always valid while anything remains.
func ValidateRefundAmount(requested *int64, amountCents, refundedCents int64) error {
	remaining := amountCents - refundedCents
	if remaining <= 0 {
		return ErrRefundExceedsCharge
	}
	if requested == nil {
		return nil
	}
	if *requested <= 0 {
		return ErrRefundAmountInvalid
	}
	if *requested > remaining {
		return ErrRefundExceedsCharge
	}
	return nil
}

// ValidateCaptureAmount checks a partial-capture request against the hold.
func ValidateCaptureAmount(requested *int64, authorizedCents int64) error {
	if requested == nil {
		return nil
	}
	if *requested <= 0 {
		return ErrCaptureAmountInvalid
	}
	if *requested > authorizedCents {
		return ErrCaptureExceedsHold
	}
	return nil
}

// ReasonOrDefault substitutes the canonical placeholder for blank reasons.
func ReasonOrDefault(reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return DefaultReason
	}
	return reason
}
