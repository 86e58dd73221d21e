package main

import (
	"clubops/src/common"
	"clubops/src/config"
	"clubops/src/db"
	"clubops/src/models"
	"clubops/src/types"
	"clubops/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 25

func pageSize(limit int) int {
	if limit <= 0 || limit > 100 {
		return defaultPageSize
	}
	return limit
}

func billingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/financials/subscriptions", func(ctx *gin.Context) {
			var filters types.SubscriptionsQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			limit := pageSize(filters.Limit)
			gdb := db.GetDb()
			q := gdb.
				Model(&models.Subscription{}).
				Order("created_at desc, id desc").
				Limit(limit + 1)
			if filters.Status != "" {
				q = q.Where("status = ?", filters.Status)
			}
			if filters.Search != "" {
				pattern := "%" + filters.Search + "%"
				q = q.Where("member_name ILIKE ? OR member_email ILIKE ? OR plan_name ILIKE ?", pattern, pattern, pattern)
			}
			if filters.StartingAfter != "" {
				var cursor models.Subscription
				if err := gdb.
					Model(&models.Subscription{}).
					Where("stripe_subscription_id = ?", filters.StartingAfter).
					First(&cursor).
					Error; err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown cursor"})
					return
				}
				q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
			}
			var subs []models.Subscription
			if err := q.Find(&subs).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			hasMore := len(subs) > limit
			nextCursor := ""
			if hasMore {
				subs = subs[:limit]
				nextCursor = subs[len(subs)-1].StripeSubscriptionId
			}
			ctx.JSON(http.StatusOK, gin.H{"data": subs, "count": len(subs), "has_more": hasMore, "next_cursor": nextCursor})
		}).
		GET("/financials/invoices", func(ctx *gin.Context) {
			var filters types.InvoicesQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			limit := pageSize(filters.Limit)
			gdb := db.GetDb()
			q := gdb.
				Model(&models.Invoice{}).
				Order("created_at desc, id desc").
				Limit(limit + 1)
			if filters.Status != "" {
				q = q.Where("status = ?", filters.Status)
			}
			if filters.Search != "" {
				pattern := "%" + filters.Search + "%"
				q = q.Where("member_name ILIKE ? OR member_email ILIKE ? OR number ILIKE ?", pattern, pattern, pattern)
			}
			if filters.StartDate != "" {
				start, err := time.Parse(config.DATE_PARSE_FORMAT, filters.StartDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				q = q.Where("created_at >= ?", start)
			}
			if filters.EndDate != "" {
				end, err := time.Parse(config.DATE_PARSE_FORMAT, filters.EndDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				q = q.Where("created_at < ?", end.Add(24*time.Hour))
			}
			if filters.StartingAfter != "" {
				var cursor models.Invoice
				if err := gdb.
					Model(&models.Invoice{}).
					Where("stripe_invoice_id = ?", filters.StartingAfter).
					First(&cursor).
					Error; err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown cursor"})
					return
				}
				q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
			}
			var invoices []models.Invoice
			if err := q.Find(&invoices).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			hasMore := len(invoices) > limit
			nextCursor := ""
			if hasMore {
				invoices = invoices[:limit]
				nextCursor = invoices[len(invoices)-1].StripeInvoiceId
			}
			ctx.JSON(http.StatusOK, gin.H{"data": invoices, "count": len(invoices), "has_more": hasMore, "next_cursor": nextCursor})
		}).
		POST("/subscriptions/sync", func(ctx *gin.Context) {
			result, err := utils.SyncSubscriptions(ctx)
			if err != nil {
				log.Printf("Error syncing subscriptions: %s\n", err.Error())
				ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
			actor := common.ActorFromContext(ctx)
			go common.RecordActivity(actor, "sync_subscriptions", "subscription", "", "", types.JSONB{
				"created": result.Created,
				"updated": result.Updated,
				"skipped": result.Skipped,
			})
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		}).
		POST("/invoices/sync", func(ctx *gin.Context) {
			result, err := utils.SyncInvoices(ctx)
			if err != nil {
				log.Printf("Error syncing invoices: %s\n", err.Error())
				ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
			actor := common.ActorFromContext(ctx)
			go common.RecordActivity(actor, "sync_invoices", "invoice", "", "", types.JSONB{
				"created": result.Created,
				"updated": result.Updated,
				"skipped": result.Skipped,
			})
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		})
	return g
}
