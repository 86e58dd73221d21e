package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanRetry(t *testing.T) {
	assert.True(t, CanRetry(false, 0))
	assert.True(t, CanRetry(false, 2))
	assert.False(t, CanRetry(false, MaxRetryAttempts))
	assert.False(t, CanRetry(false, MaxRetryAttempts+1))
	assert.False(t, CanRetry(true, 0))
}

func TestClassifyExpiry(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	label, urgent := ClassifyExpiry(now.Add(-time.Minute), now)
	assert.Equal(t, "Expired", label)
	assert.True(t, urgent)

	label, urgent = ClassifyExpiry(now, now)
	assert.Equal(t, "Expired", label)
	assert.True(t, urgent)

	label, urgent = ClassifyExpiry(now.Add(5*time.Hour), now)
	assert.Equal(t, "0d 5h", label)
	assert.True(t, urgent)

	label, urgent = ClassifyExpiry(now.Add(26*time.Hour), now)
	assert.Equal(t, "1d 2h", label)
	assert.True(t, urgent)

	label, urgent = ClassifyExpiry(now.Add(3*24*time.Hour), now)
	assert.Equal(t, "3d 0h", label)
	assert.False(t, urgent)
}

func TestParseDollarAmount(t *testing.T) {
	cents, err := ParseDollarAmount("10")
	assert.Nil(t, err)
	assert.Equal(t, int64(1000), cents)

	cents, err = ParseDollarAmount("10.55")
	assert.Nil(t, err)
	assert.Equal(t, int64(1055), cents)

	// float dollars must round, not truncate
	cents, err = ParseDollarAmount("19.99")
	assert.Nil(t, err)
	assert.Equal(t, int64(1999), cents)

	cents, err = ParseDollarAmount("0.1")
	assert.Nil(t, err)
	assert.Equal(t, int64(10), cents)

	_, err = ParseDollarAmount("0")
	assert.NotNil(t, err)

	_, err = ParseDollarAmount("-5")
	assert.NotNil(t, err)

	_, err = ParseDollarAmount("abc")
	assert.NotNil(t, err)

	_, err = ParseDollarAmount("")
	assert.NotNil(t, err)
}

func TestValidateRefundAmount(t *testing.T) {
	// nil requests the full remaining amount
	assert.Nil(t, ValidateRefundAmount(nil, 5000, 0))
	assert.Nil(t, ValidateRefundAmount(nil, 5000, 2000))

	// nothing left to refund
	assert.ErrorIs(t, ValidateRefundAmount(nil, 5000, 5000), ErrRefundExceedsCharge)

	amt := int64(5000)
	assert.Nil(t, ValidateRefundAmount(&amt, 5000, 0))

	partial := int64(2500)
	assert.Nil(t, ValidateRefundAmount(&partial, 5000, 0))
	assert.Nil(t, ValidateRefundAmount(&partial, 5000, 2500))

	over := int64(5001)
	assert.ErrorIs(t, ValidateRefundAmount(&over, 5000, 0), ErrRefundExceedsCharge)

	remainder := int64(3000)
	assert.ErrorIs(t, ValidateRefundAmount(&remainder, 5000, 2500), ErrRefundExceedsCharge)

	zero := int64(0)
	assert.ErrorIs(t, ValidateRefundAmount(&zero, 5000, 0), ErrRefundAmountInvalid)

	negative := int64(-100)
	assert.ErrorIs(t, ValidateRefundAmount(&negative, 5000, 0), ErrRefundAmountInvalid)
}

func TestValidateCaptureAmount(t *testing.T) {
	assert.Nil(t, ValidateCaptureAmount(nil, 5000))

	full := int64(5000)
	assert.Nil(t, ValidateCaptureAmount(&full, 5000))

	partial := int64(100)
	assert.Nil(t, ValidateCaptureAmount(&partial, 5000))

	over := int64(5001)
	assert.ErrorIs(t, ValidateCaptureAmount(&over, 5000), ErrCaptureExceedsHold)

	zero := int64(0)
	assert.ErrorIs(t, ValidateCaptureAmount(&zero, 5000), ErrCaptureAmountInvalid)
}

func TestReasonOrDefault(t *testing.T) {
	assert.Equal(t, DefaultReason, ReasonOrDefault(""))
	assert.Equal(t, DefaultReason, ReasonOrDefault("   "))
	assert.Equal(t, "duplicate", ReasonOrDefault("duplicate"))
}
