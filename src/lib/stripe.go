package lib

import (
	"context"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

// NewStripeClient Replace stripe instance with custom client implementation
func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// StripeCapturePaymentIntent captures a held authorization, optionally for a
// partial amount. A nil amount captures the full hold.
func StripeCapturePaymentIntent(ctx context.Context, paymentIntentId string, amountCents *int64) (*stripe.PaymentIntent, error) {
	sc := GetStripeClient()
	params := &stripe.PaymentIntentCaptureParams{}
	if amountCents != nil {
		params.AmountToCapture = stripe.Int64(*amountCents)
	}
	return sc.V1PaymentIntents.Capture(ctx, paymentIntentId, params)
}

// StripeCancelPaymentIntent voids a hold or cancels a failed intent.
func StripeCancelPaymentIntent(ctx context.Context, paymentIntentId string) (*stripe.PaymentIntent, error) {
	sc := GetStripeClient()
	return sc.V1PaymentIntents.Cancel(ctx, paymentIntentId, &stripe.PaymentIntentCancelParams{
		CancellationReason: stripe.String("requested_by_customer"),
	})
}

// StripeConfirmPaymentIntent re-attempts a failed charge against the payment
// method already attached to the intent.
func StripeConfirmPaymentIntent(ctx context.Context, paymentIntentId string) (*stripe.PaymentIntent, error) {
	sc := GetStripeClient()
	return sc.V1PaymentIntents.Confirm(ctx, paymentIntentId, &stripe.PaymentIntentConfirmParams{})
}

// StripeCreateRefund refunds a captured charge. A nil amount refunds the
// entire remaining amount server-side.
func StripeCreateRefund(ctx context.Context, paymentIntentId string, amountCents *int64, reason string) (*stripe.Refund, error) {
	sc := GetStripeClient()
	params := &stripe.RefundCreateParams{
		PaymentIntent: stripe.String(paymentIntentId),
	}
	if amountCents != nil {
		params.Amount = stripe.Int64(*amountCents)
	}
	params.AddMetadata("reason", reason)
	return sc.V1Refunds.Create(ctx, params)
}
