package main

import (
	"clubops/src/common"
	"clubops/src/db"
	"clubops/src/models"
	"clubops/src/models/scopes"
	"clubops/src/types"
	"clubops/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func transactionHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/transactions/today", func(ctx *gin.Context) {
			db := db.GetDb()
			var txns []models.Transaction
			if err := db.
				Model(&models.Transaction{}).
				Preload("Member").
				Scopes(scopes.CreatedToday).
				Order("created_at desc").
				Find(&txns).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txns, "count": len(txns)})
		}).
		GET("/transactions/summary", func(ctx *gin.Context) {
			summary, err := utils.GetDailySummary()
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": summary})
		}).
		GET("/transactions/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			id, err := uuid.Parse(params.ID)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var txn models.Transaction
			if err := db.
				Model(&models.Transaction{}).
				Preload("Member").
				Where("id = ?", id).
				First(&txn).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			var refunds []models.Refund
			if txn.PaymentIntentId != nil {
				db.
					Model(&models.Refund{}).
					Where("transaction_id = ?", txn.ID).
					Order("created_at desc").
					Find(&refunds)
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn, "refunds": refunds})
		}).
		POST("/transactions", func(ctx *gin.Context) {
			var body types.CreateTransactionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if body.AmountCents <= 0 {
				cents, err := common.ParseDollarAmount(body.Amount)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				body.AmountCents = cents
			}
			txn := &models.Transaction{
				AmountCents: body.AmountCents,
				Description: body.Description,
				Category:    body.Category,
				Status:      types.TRANSACTION_SUCCEEDED,
				Metadata:    types.JSONB(body.Metadata),
			}
			if body.PaymentIntentID != "" {
				txn.PaymentIntentId = &body.PaymentIntentID
			}
			db := db.GetDb()
			if body.MemberEmail != "" {
				var member models.Member
				if err := db.
					Model(&models.Member{}).
					Where("email = ?", body.MemberEmail).
					First(&member).
					Error; err == nil {
					txn.MemberID = &member.ID
				}
			}
			if err := db.Create(txn).Error; err != nil {
				log.Printf("Error creating transaction: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actor := common.ActorFromContext(ctx)
			go common.RecordActivity(actor, "create_transaction", "transaction", txn.ID.String(), body.Description, types.JSONB{
				"amount": txn.AmountCents,
			})
			go utils.PublishPaymentEvent("transaction.created", types.JSONB{
				"transaction_id": txn.ID.String(),
				"amount_cents":   txn.AmountCents,
			})
			ctx.JSON(http.StatusCreated, gin.H{"data": txn})
		})
	return g
}
