package main

import (
	"clubops/src/common"
	"clubops/src/db"
	"clubops/src/models"
	"clubops/src/types"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func stripeWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)
		switch event.Type {
		case "payment_intent.amount_capturable_updated":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				log.Printf("[Stripe] Error parsing PaymentIntent: %s\n", err.Error())
				break
			}
			go func() {
				db := db.GetDb()
				auth := models.PendingAuthorization{
					PaymentIntentId: pi.ID,
					AmountCents:     pi.AmountCapturable,
					Description:     pi.Description,
					ExpiresAt:       time.Unix(pi.Created, 0).Add(7 * 24 * time.Hour),
					Status:          types.AUTHORIZATION_PENDING,
				}
				err := db.Transaction(func(tx *gorm.DB) error {
					return tx.
						Clauses(clause.OnConflict{
							Columns:   []clause.Column{{Name: "payment_intent_id"}},
							DoUpdates: clause.AssignmentColumns([]string{"amount_cents"}),
						}).
						Create(&auth).
						Error
				})
				if err != nil {
					log.Printf("Error recording authorization %s: %s\n", pi.ID, err.Error())
					return
				}
				go common.RecordActivity(common.SystemActor, "authorization_created", "payment", pi.ID, pi.Description, types.JSONB{
					"amount": pi.AmountCapturable,
				})
			}()
		case "payment_intent.payment_failed":
			var pi stripe.PaymentIntent
			if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
				log.Printf("[Stripe] Error parsing PaymentIntent: %s\n", err.Error())
				break
			}
			go func() {
				var reason *string
				requiresCardUpdate := false
				if pi.LastPaymentError != nil {
					msg := pi.LastPaymentError.Msg
					reason = &msg
					requiresCardUpdate = pi.LastPaymentError.Code == stripe.ErrorCodeCardDeclined ||
						pi.LastPaymentError.Code == stripe.ErrorCodeExpiredCard
				}
				fp := models.FailedPayment{
					PaymentIntentId:    pi.ID,
					AmountCents:        pi.Amount,
					Description:        pi.Description,
					Status:             types.FailedPaymentStatus(pi.Status),
					FailureReason:      reason,
					RequiresCardUpdate: requiresCardUpdate,
				}
				db := db.GetDb()
				err := db.Transaction(func(tx *gorm.DB) error {
					return tx.
						Clauses(clause.OnConflict{
							Columns:   []clause.Column{{Name: "payment_intent_id"}},
							DoUpdates: clause.AssignmentColumns([]string{"status", "failure_reason", "requires_card_update"}),
						}).
						Create(&fp).
						Error
				})
				if err != nil {
					log.Printf("Error recording failed payment %s: %s\n", pi.ID, err.Error())
				}
			}()
		case "charge.refunded":
			var ch stripe.Charge
			if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
				log.Printf("[Stripe] Error parsing Charge: %s\n", err.Error())
				break
			}
			if ch.PaymentIntent == nil {
				break
			}
			piId := ch.PaymentIntent.ID
			go func() {
				db := db.GetDb()
				err := db.Transaction(func(tx *gorm.DB) error {
					var txn models.Transaction
					if err := tx.
						Model(&models.Transaction{}).
						Where("payment_intent_id = ?", piId).
						First(&txn).
						Error; err != nil {
						return err
					}
					status := types.TRANSACTION_PARTIALLY_REFUNDED
					if ch.AmountRefunded >= txn.AmountCents {
						status = types.TRANSACTION_REFUNDED
					}
					return tx.
						Model(&models.Transaction{}).
						Where("id = ?", txn.ID).
						Updates(map[string]any{
							"amount_refunded_cents": ch.AmountRefunded,
							"status":                status,
						}).
						Error
				})
				if err != nil {
					log.Printf("Error reconciling refund for %s: %s\n", piId, err.Error())
				}
			}()
		default:
			log.Printf("Unhandled event type: %s\n", event.Type)
		}
		ctx.Status(http.StatusOK)
	})
	return apiv1
}
