package utils

import (
	"clubops/src/common"
	"clubops/src/config"
	"clubops/src/db"
	"clubops/src/lib"
	"clubops/src/models"
	"clubops/src/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"
)

// PublishPaymentEvent fans a mutating payment operation out to downstream
// ledger consumers. Test and production traffic goes through SQS; local
// environments publish to Kafka.
func PublishPaymentEvent(source string, payload types.JSONB) {
	apiEnv := os.Getenv("API_ENV")
	body := types.JSONB{
		"source":  source,
		"payload": payload,
	}
	if apiEnv == "test" || apiEnv == "production" {
		b, _ := json.Marshal(&body)
		if err := lib.SQSProduceMessage(lib.WithSuffix(config.PaymentEventsQueue), string(b)); err != nil {
			log.Printf("Error sending message to queue: %s\n", err.Error())
		}
		return
	}
	if err := lib.KafkaProduceMessage("paymentsProducer", lib.WithSuffix(config.PaymentEventsQueue), body); err != nil {
		log.Printf("Error sending message to queue: %s\n", err.Error())
	}
}

// CaptureAuthorization captures a pending hold, optionally partially.
// Validation failures return before any Stripe call is made.
func CaptureAuthorization(ctx context.Context, paymentIntentId string, amountCents *int64) (*models.Transaction, error) {
	gdb := db.GetDb()
	var auth models.PendingAuthorization
	if err := gdb.
		Model(&models.PendingAuthorization{}).
		Where(&models.PendingAuthorization{PaymentIntentId: paymentIntentId}).
		Where("status = ?", types.AUTHORIZATION_PENDING).
		First(&auth).
		Error; err != nil {
		return nil, err
	}
	if err := common.ValidateCaptureAmount(amountCents, auth.AmountCents); err != nil {
		return nil, err
	}
	pi, err := lib.StripeCapturePaymentIntent(ctx, paymentIntentId, amountCents)
	if err != nil {
		log.Printf("[Stripe] Capture failed for %s: %s\n", paymentIntentId, err.Error())
		return nil, err
	}
	captured := auth.AmountCents
	if amountCents != nil {
		captured = *amountCents
	}
	txn := &models.Transaction{
		PaymentIntentId: &auth.PaymentIntentId,
		AmountCents:     captured,
		Currency:        string(pi.Currency),
		Status:          types.TRANSACTION_SUCCEEDED,
		Description:     auth.Description,
		Category:        "capture",
		MemberID:        auth.MemberID,
	}
	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.PendingAuthorization{}).
			Where("id = ?", auth.ID).
			Updates(&models.PendingAuthorization{Status: types.AUTHORIZATION_CAPTURED}).
			Error; err != nil {
			return err
		}
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("Error recording capture for %s: %s\n", paymentIntentId, err.Error())
		return nil, err
	}
	go PublishPaymentEvent("payment.captured", types.JSONB{
		"payment_intent_id": paymentIntentId,
		"amount_cents":      captured,
	})
	return txn, nil
}

// VoidAuthorization cancels a hold without charging it.
func VoidAuthorization(ctx context.Context, paymentIntentId string, reason string) error {
	reason = common.ReasonOrDefault(reason)
	gdb := db.GetDb()
	var auth models.PendingAuthorization
	if err := gdb.
		Model(&models.PendingAuthorization{}).
		Where(&models.PendingAuthorization{PaymentIntentId: paymentIntentId}).
		Where("status = ?", types.AUTHORIZATION_PENDING).
		First(&auth).
		Error; err != nil {
		return err
	}
	if _, err := lib.StripeCancelPaymentIntent(ctx, paymentIntentId); err != nil {
		log.Printf("[Stripe] Void failed for %s: %s\n", paymentIntentId, err.Error())
		return err
	}
	if err := gdb.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.PendingAuthorization{}).
			Where("id = ?", auth.ID).
			Updates(&models.PendingAuthorization{
				Status:     types.AUTHORIZATION_VOIDED,
				VoidReason: &reason,
			}).
			Error
	}); err != nil {
		log.Printf("Error recording void for %s: %s\n", paymentIntentId, err.Error())
		return err
	}
	go PublishPaymentEvent("payment.voided", types.JSONB{
		"payment_intent_id": paymentIntentId,
		"reason":            reason,
	})
	return nil
}

// RetryFailedPayment re-attempts a failed charge. Eligibility is enforced
// here as well as in the handler: payments needing a card update or already
// at the attempt cap are refused.
func RetryFailedPayment(ctx context.Context, paymentIntentId string) (*models.FailedPayment, error) {
	gdb := db.GetDb()
	var fp models.FailedPayment
	if err := gdb.
		Model(&models.FailedPayment{}).
		Where(&models.FailedPayment{PaymentIntentId: paymentIntentId}).
		First(&fp).
		Error; err != nil {
		return nil, err
	}
	if !common.CanRetry(fp.RequiresCardUpdate, fp.RetryCount) {
		return &fp, common.ErrRetryNotAllowed
	}
	now := time.Now()
	fp.RetryCount++
	fp.LastRetryAt = &now
	if err := gdb.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.FailedPayment{}).
			Where("id = ?", fp.ID).
			Updates(map[string]any{
				"retry_count":   fp.RetryCount,
				"last_retry_at": now,
			}).
			Error
	}); err != nil {
		return &fp, err
	}
	pi, err := lib.StripeConfirmPaymentIntent(ctx, paymentIntentId)
	if err != nil {
		log.Printf("[Stripe] Retry failed for %s: %s\n", paymentIntentId, err.Error())
		return &fp, err
	}
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		if err := gdb.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.FailedPayment{}, "id = ?", fp.ID).Error; err != nil {
				return err
			}
			txn := &models.Transaction{
				PaymentIntentId: &fp.PaymentIntentId,
				AmountCents:     fp.AmountCents,
				Currency:        string(pi.Currency),
				Status:          types.TRANSACTION_SUCCEEDED,
				Description:     fp.Description,
				Category:        "retry",
				MemberID:        fp.MemberID,
			}
			return tx.Create(txn).Error
		}); err != nil {
			return &fp, err
		}
	}
	go PublishPaymentEvent("payment.retried", types.JSONB{
		"payment_intent_id": paymentIntentId,
		"retry_count":       fp.RetryCount,
		"intent_status":     string(pi.Status),
	})
	return &fp, nil
}

// CancelFailedPayment cancels the intent and removes the record from the
// failed list entirely.
func CancelFailedPayment(ctx context.Context, paymentIntentId string) error {
	gdb := db.GetDb()
	var fp models.FailedPayment
	if err := gdb.
		Model(&models.FailedPayment{}).
		Where(&models.FailedPayment{PaymentIntentId: paymentIntentId}).
		First(&fp).
		Error; err != nil {
		return err
	}
	if _, err := lib.StripeCancelPaymentIntent(ctx, paymentIntentId); err != nil {
		log.Printf("[Stripe] Cancel failed for %s: %s\n", paymentIntentId, err.Error())
		return err
	}
	if err := gdb.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.FailedPayment{}, "id = ?", fp.ID).Error
	}); err != nil {
		return err
	}
	go PublishPaymentEvent("payment.canceled", types.JSONB{
		"payment_intent_id": paymentIntentId,
	})
	return nil
}

// RefundPayment issues a full or partial refund against a captured charge.
// A nil amount refunds the full remaining amount. The amount invariant is
// checked before any Stripe call.
func RefundPayment(ctx context.Context, paymentIntentId string, amountCents *int64, reason, issuedBy string) (*models.Refund, error) {
	reason = common.ReasonOrDefault(reason)
	gdb := db.GetDb()
	var txn models.Transaction
	if err := gdb.
		Model(&models.Transaction{}).
		Where("payment_intent_id = ?", paymentIntentId).
		First(&txn).
		Error; err != nil {
		return nil, err
	}
	if err := common.ValidateRefundAmount(amountCents, txn.AmountCents, txn.AmountRefundedCents); err != nil {
		return nil, err
	}
	sr, err := lib.StripeCreateRefund(ctx, paymentIntentId, amountCents, reason)
	if err != nil {
		log.Printf("[Stripe] Refund failed for %s: %s\n", paymentIntentId, err.Error())
		return nil, err
	}
	refunded := txn.AmountCents - txn.AmountRefundedCents
	if amountCents != nil {
		refunded = *amountCents
	}
	newTotal := txn.AmountRefundedCents + refunded
	newStatus := types.TRANSACTION_PARTIALLY_REFUNDED
	if newTotal >= txn.AmountCents {
		newStatus = types.TRANSACTION_REFUNDED
	}
	refund := &models.Refund{
		TransactionID:   txn.ID,
		PaymentIntentId: paymentIntentId,
		AmountCents:     refunded,
		Reason:          reason,
		StripeRefundId:  &sr.ID,
		Status:          types.REFUND_SUCCEEDED,
		IssuedBy:        issuedBy,
	}
	if err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(refund).Error; err != nil {
			return err
		}
		return tx.
			Model(&models.Transaction{}).
			Where("id = ?", txn.ID).
			Updates(map[string]any{
				"amount_refunded_cents": newTotal,
				"status":                newStatus,
			}).
			Error
	}); err != nil {
		log.Printf("Error recording refund for %s: %s\n", paymentIntentId, err.Error())
		return nil, err
	}
	go PublishPaymentEvent("payment.refunded", types.JSONB{
		"payment_intent_id": paymentIntentId,
		"amount_cents":      refunded,
		"reason":            reason,
	})
	return refund, nil
}

// SyncSubscriptions reconciles mirrored subscription rows against the
// payment processor's list, returning created/updated/skipped counts.
func SyncSubscriptions(ctx context.Context) (*types.SyncResult, error) {
	sc := lib.GetStripeClient()
	params := &stripe.SubscriptionListParams{
		Status: stripe.String("all"),
	}
	params.AddExpand("data.customer")
	list := sc.V1Subscriptions.List(ctx, params)

	result := &types.SyncResult{}
	gdb := db.GetDb()
	for sub, err := range list {
		if err != nil {
			log.Printf("[Stripe] Expected a list but got error: %s\n", err.Error())
			return nil, err
		}
		row := subscriptionRow(sub)
		var existing models.Subscription
		err := gdb.
			Model(&models.Subscription{}).
			Where("stripe_subscription_id = ?", sub.ID).
			First(&existing).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gdb.Create(row).Error; err != nil {
				log.Printf("Error creating subscription %s: %s\n", sub.ID, err.Error())
				return nil, err
			}
			result.Created++
			continue
		}
		if err != nil {
			return nil, err
		}
		if existing.Status == row.Status &&
			existing.AmountCents == row.AmountCents &&
			existing.PlanName == row.PlanName {
			result.Skipped++
			continue
		}
		if err := gdb.
			Model(&models.Subscription{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"status":             row.Status,
				"amount_cents":       row.AmountCents,
				"plan_name":          row.PlanName,
				"current_period_end": row.CurrentPeriodEnd,
				"member_name":        row.MemberName,
				"member_email":       row.MemberEmail,
			}).
			Error; err != nil {
			return nil, err
		}
		result.Updated++
	}
	return result, nil
}

func subscriptionRow(sub *stripe.Subscription) *models.Subscription {
	row := &models.Subscription{
		StripeSubscriptionId: sub.ID,
		Status:               types.SubscriptionStatus(sub.Status),
	}
	if sub.Customer != nil {
		row.MemberName = sub.Customer.Name
		row.MemberEmail = sub.Customer.Email
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		if item.Price != nil {
			row.AmountCents = item.Price.UnitAmount
			row.PlanName = item.Price.Nickname
			if row.PlanName == "" {
				row.PlanName = item.Price.ID
			}
		}
		if item.CurrentPeriodEnd > 0 {
			end := time.Unix(item.CurrentPeriodEnd, 0)
			row.CurrentPeriodEnd = &end
		}
	}
	return row
}

// SyncInvoices reconciles mirrored invoice rows against the payment
// processor's list, same shape as SyncSubscriptions.
func SyncInvoices(ctx context.Context) (*types.SyncResult, error) {
	sc := lib.GetStripeClient()
	list := sc.V1Invoices.List(ctx, &stripe.InvoiceListParams{})

	result := &types.SyncResult{}
	gdb := db.GetDb()
	for inv, err := range list {
		if err != nil {
			log.Printf("[Stripe] Expected a list but got error: %s\n", err.Error())
			return nil, err
		}
		row := invoiceRow(inv)
		var existing models.Invoice
		err := gdb.
			Model(&models.Invoice{}).
			Where("stripe_invoice_id = ?", inv.ID).
			First(&existing).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := gdb.Create(row).Error; err != nil {
				log.Printf("Error creating invoice %s: %s\n", inv.ID, err.Error())
				return nil, err
			}
			result.Created++
			continue
		}
		if err != nil {
			return nil, err
		}
		if existing.Status == row.Status &&
			existing.AmountDueCents == row.AmountDueCents &&
			existing.AmountPaidCents == row.AmountPaidCents {
			result.Skipped++
			continue
		}
		if err := gdb.
			Model(&models.Invoice{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"status":            row.Status,
				"number":            row.Number,
				"amount_due_cents":  row.AmountDueCents,
				"amount_paid_cents": row.AmountPaidCents,
				"due_date":          row.DueDate,
				"member_name":       row.MemberName,
				"member_email":      row.MemberEmail,
			}).
			Error; err != nil {
			return nil, err
		}
		result.Updated++
	}
	return result, nil
}

func invoiceRow(inv *stripe.Invoice) *models.Invoice {
	row := &models.Invoice{
		StripeInvoiceId: inv.ID,
		Number:          inv.Number,
		MemberName:      inv.CustomerName,
		MemberEmail:     inv.CustomerEmail,
		AmountDueCents:  inv.AmountDue,
		AmountPaidCents: inv.AmountPaid,
		Status:          types.InvoiceStatus(inv.Status),
	}
	if inv.DueDate > 0 {
		due := time.Unix(inv.DueDate, 0)
		row.DueDate = &due
	}
	return row
}

// GetDailySummary computes the immutable per-day aggregate behind the
// summary view, cached briefly so dashboard polling stays off the database.
func GetDailySummary() (*types.DailySummary, error) {
	today := time.Now().Format(config.DATE_PARSE_FORMAT)
	cacheKey := fmt.Sprintf("summary:%s", today)
	rd := lib.GetRedisClient()
	if rd != nil {
		if val := rd.Get(context.Background(), cacheKey).Val(); val != "" {
			var cached types.DailySummary
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}
	gdb := db.GetDb()
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var txns []models.Transaction
	if err := gdb.
		Model(&models.Transaction{}).
		Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour)).
		Where("status = ?", types.TRANSACTION_SUCCEEDED).
		Find(&txns).
		Error; err != nil {
		return nil, err
	}
	summary := &types.DailySummary{
		Date:      today,
		Breakdown: map[string]int64{},
	}
	for _, t := range txns {
		summary.TotalCollectedCents += t.AmountCents - t.AmountRefundedCents
		summary.TransactionCount++
		category := t.Category
		if category == "" {
			category = "other"
		}
		summary.Breakdown[category] += t.AmountCents - t.AmountRefundedCents
	}
	if rd != nil {
		if b, err := json.Marshal(summary); err == nil {
			rd.SetEx(context.Background(), cacheKey, string(b), time.Minute)
		}
	}
	return summary, nil
}
