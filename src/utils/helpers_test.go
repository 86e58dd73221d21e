package utils

import (
	"clubops/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82"
)

func TestSubscriptionRow(t *testing.T) {
	periodEnd := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	sub := &stripe.Subscription{
		ID:     "sub_123",
		Status: stripe.SubscriptionStatusActive,
		Customer: &stripe.Customer{
			Name:  "Pat Member",
			Email: "pat@example.com",
		},
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{
					Price: &stripe.Price{
						ID:         "price_123",
						Nickname:   "Gold Membership",
						UnitAmount: 12900,
					},
					CurrentPeriodEnd: periodEnd.Unix(),
				},
			},
		},
	}

	row := subscriptionRow(sub)
	assert.Equal(t, "sub_123", row.StripeSubscriptionId)
	assert.Equal(t, types.SUBSCRIPTION_ACTIVE, row.Status)
	assert.Equal(t, "Pat Member", row.MemberName)
	assert.Equal(t, "pat@example.com", row.MemberEmail)
	assert.Equal(t, "Gold Membership", row.PlanName)
	assert.Equal(t, int64(12900), row.AmountCents)
	assert.NotNil(t, row.CurrentPeriodEnd)
	assert.Equal(t, periodEnd.Unix(), row.CurrentPeriodEnd.Unix())
}

func TestSubscriptionRowPlanFallback(t *testing.T) {
	sub := &stripe.Subscription{
		ID:     "sub_456",
		Status: stripe.SubscriptionStatusPastDue,
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{Price: &stripe.Price{ID: "price_456", UnitAmount: 4900}},
			},
		},
	}

	row := subscriptionRow(sub)
	assert.Equal(t, "price_456", row.PlanName)
	assert.Equal(t, types.SUBSCRIPTION_PAST_DUE, row.Status)
	assert.Nil(t, row.CurrentPeriodEnd)
}

func TestInvoiceRow(t *testing.T) {
	due := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	inv := &stripe.Invoice{
		ID:            "in_123",
		Number:        "CLUB-0042",
		Status:        stripe.InvoiceStatusOpen,
		CustomerName:  "Pat Member",
		CustomerEmail: "pat@example.com",
		AmountDue:     12900,
		AmountPaid:    0,
		DueDate:       due.Unix(),
	}

	row := invoiceRow(inv)
	assert.Equal(t, "in_123", row.StripeInvoiceId)
	assert.Equal(t, "CLUB-0042", row.Number)
	assert.Equal(t, types.INVOICE_OPEN, row.Status)
	assert.Equal(t, "Pat Member", row.MemberName)
	assert.Equal(t, "pat@example.com", row.MemberEmail)
	assert.Equal(t, int64(12900), row.AmountDueCents)
	assert.NotNil(t, row.DueDate)
	assert.Equal(t, due.Unix(), row.DueDate.Unix())
}

func TestInvoiceRowNoDueDate(t *testing.T) {
	inv := &stripe.Invoice{
		ID:         "in_456",
		Status:     stripe.InvoiceStatusPaid,
		AmountDue:  4900,
		AmountPaid: 4900,
	}

	row := invoiceRow(inv)
	assert.Equal(t, types.INVOICE_PAID, row.Status)
	assert.Equal(t, int64(4900), row.AmountPaidCents)
	assert.Nil(t, row.DueDate)
}
