package main

import (
	"clubops/src/common"
	"clubops/src/db"
	"clubops/src/models"
	"clubops/src/models/scopes"
	"clubops/src/types"
	"clubops/src/utils"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func paymentStatusCode(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrCaptureAmountInvalid),
		errors.Is(err, common.ErrCaptureExceedsHold),
		errors.Is(err, common.ErrRefundAmountInvalid),
		errors.Is(err, common.ErrRefundExceedsCharge):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrRetryNotAllowed):
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/payments/pending-authorizations", func(ctx *gin.Context) {
			db := db.GetDb()
			var auths []models.PendingAuthorization
			if err := db.
				Model(&models.PendingAuthorization{}).
				Preload("Member").
				Scopes(scopes.WithStatus(string(types.AUTHORIZATION_PENDING))).
				Order("expires_at asc").
				Find(&auths).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			now := time.Now()
			data := make([]gin.H, 0, len(auths))
			for _, a := range auths {
				label, urgent := common.ClassifyExpiry(a.ExpiresAt, now)
				data = append(data, gin.H{
					"authorization": a,
					"expiry_label":  label,
					"urgent":        urgent,
				})
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		POST("/payments/capture", func(ctx *gin.Context) {
			var body types.CaptureRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			txn, err := utils.CaptureAuthorization(ctx, body.PaymentIntentID, body.AmountCents)
			if err != nil {
				log.Printf("Error on capture [%s]: %s\n", body.PaymentIntentID, err.Error())
				ctx.JSON(paymentStatusCode(err), gin.H{"error": err.Error()})
				return
			}
			actor := common.ActorFromContext(ctx)
			go common.RecordActivity(actor, "capture_payment", "payment", body.PaymentIntentID, txn.Description, types.JSONB{
				"amount": txn.AmountCents,
			})
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		}).
		POST("/payments/void-authorization", func(ctx *gin.Context) {
			var body types.VoidAuthorizationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := utils.VoidAuthorization(ctx, body.PaymentIntentID, body.Reason); err != nil {
				log.Printf("Error on void [%s]: %s\n", body.PaymentIntentID, err.Error())
				ctx.JSON(paymentStatusCode(err), gin.H{"error": err.Error()})
				return
			}
			actor := common.ActorFromContext(ctx)
			go common.RecordActivity(actor, "void_authorization", "payment", body.PaymentIntentID, "", types.JSONB{
				"reason": common.ReasonOrDefault(body.Reason),
			})
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		}).
		GET("/payments/failed", func(ctx *gin.Context) {
			db := db.GetDb()
			var failed []models.FailedPayment
			if err := db.
				Model(&models.FailedPayment{}).
				Preload("Member").
				Order("created_at desc").
				Find(&failed).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			data := make([]gin.H, 0, len(failed))
			for _, f := range failed {
				data = append(data, gin.H{
					"payment":   f,
					"can_retry": common.CanRetry(f.RequiresCardUpdate, f.RetryCount),
				})
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		POST("/payments/retry", func(ctx *gin.Context) {
			var body types.RetryRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			fp, err := utils.RetryFailedPayment(ctx, body.PaymentIntentID)
			if err != nil {
				log.Printf("Error on retry [%s]: %s\n", body.PaymentIntentID, err.Error())
				code := paymentStatusCode(err)
				resp := gin.H{"success": false, "error": err.Error()}
				if fp != nil {
					resp["retry_count"] = fp.RetryCount
				}
				ctx.JSON(code, resp)
				return
			}
			actor := common.ActorFromContext(ctx)
			go common.RecordActivity(actor, "retry_payment", "payment", body.PaymentIntentID, fp.Description, types.JSONB{
				"retry_count": fp.RetryCount,
				"max_retries": common.MaxRetryAttempts,
			})
			ctx.JSON(http.StatusOK, gin.H{"success": true, "retry_count": fp.RetryCount})
		}).
		POST("/payments/cancel", func(ctx *gin.Context) {
			var body types.CancelRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := utils.CancelFailedPayment(ctx, body.PaymentIntentID); err != nil {
				log.Printf("Error on cancel [%s]: %s\n", body.PaymentIntentID, err.Error())
				ctx.JSON(paymentStatusCode(err), gin.H{"error": err.Error()})
				return
			}
			actor := common.ActorFromContext(ctx)
			go common.RecordActivity(actor, "cancel_payment", "payment", body.PaymentIntentID, "", nil)
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		}).
		GET("/payments/refundable", func(ctx *gin.Context) {
			db := db.GetDb()
			var txns []models.Transaction
			if err := db.
				Model(&models.Transaction{}).
				Preload("Member").
				Where("status IN ?", []types.TransactionStatus{
					types.TRANSACTION_SUCCEEDED,
					types.TRANSACTION_PARTIALLY_REFUNDED,
				}).
				Where("payment_intent_id IS NOT NULL").
				Where("amount_refunded_cents < amount_cents").
				Order("created_at desc").
				Find(&txns).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txns, "count": len(txns)})
		}).
		POST("/payments/refund", func(ctx *gin.Context) {
			var body types.RefundRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if body.AmountCents == nil && body.Amount != "" {
				cents, err := common.ParseDollarAmount(body.Amount)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				body.AmountCents = &cents
			}
			actor := common.ActorFromContext(ctx)
			refund, err := utils.RefundPayment(ctx, body.PaymentIntentID, body.AmountCents, body.Reason, actor.Email)
			if err != nil {
				log.Printf("Error on refund [%s]: %s\n", body.PaymentIntentID, err.Error())
				ctx.JSON(paymentStatusCode(err), gin.H{"error": err.Error()})
				return
			}
			go common.RecordActivity(actor, "refund_payment", "payment", body.PaymentIntentID, "", types.JSONB{
				"amount": refund.AmountCents,
				"reason": refund.Reason,
			})
			ctx.JSON(http.StatusOK, gin.H{"data": refund})
		}).
		POST("/payments/add-note", func(ctx *gin.Context) {
			var body types.AddNoteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actor := common.ActorFromContext(ctx)
			note := &models.PaymentNote{
				PaymentIntentId: body.PaymentIntentID,
				Note:            body.Note,
				AuthorEmail:     actor.Email,
			}
			db := db.GetDb()
			if err := db.Create(note).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			go common.RecordActivity(actor, "add_payment_note", "payment", body.PaymentIntentID, "", types.JSONB{
				"note": body.Note,
			})
			ctx.JSON(http.StatusCreated, gin.H{"data": note})
		}).
		GET("/payments/:id/notes", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var notes []models.PaymentNote
			if err := db.
				Model(&models.PaymentNote{}).
				Where("payment_intent_id = ?", params.ID).
				Order("created_at desc").
				Find(&notes).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notes, "count": len(notes)})
		})
	return g
}
