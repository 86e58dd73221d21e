package main

import (
	"clubops/src/common"
	"clubops/src/db"
	"clubops/src/models"
	"clubops/src/models/scopes"
	"clubops/src/types"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings/overdue-payments", func(ctx *gin.Context) {
			db := db.GetDb()
			var bookings []models.Booking
			if err := db.
				Model(&models.Booking{}).
				Preload("Member").
				Preload("Waivers", "reviewed_at IS NULL").
				Where("balance_due > ? OR id IN (?)",
					0,
					db.Model(&models.FeeWaiver{}).Select("booking_id").Where("reviewed_at IS NULL"),
				).
				Order("balance_due desc").
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/stale-waivers", func(ctx *gin.Context) {
			db := db.GetDb()
			var waivers []models.FeeWaiver
			if err := db.
				Model(&models.FeeWaiver{}).
				Preload("Booking").
				Preload("Booking.Member").
				Where("stale = ?", true).
				Scopes(scopes.Unreviewed).
				Order("created_at asc").
				Find(&waivers).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": waivers, "count": len(waivers)})
		}).
		POST("/bookings/bulk-review-all-waivers", func(ctx *gin.Context) {
			actor := common.ActorFromContext(ctx)
			var reviewed int64
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				res := tx.
					Model(&models.FeeWaiver{}).
					Where("stale = ?", true).
					Where("reviewed_at IS NULL").
					Updates(map[string]any{
						"reviewed_at": time.Now(),
						"reviewed_by": actor.Email,
					})
				if res.Error != nil {
					return res.Error
				}
				reviewed = res.RowsAffected
				return nil
			})
			if err != nil {
				log.Printf("Error reviewing waivers: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			go common.RecordActivity(actor, "bulk_review_waivers", "waiver", "", "", types.JSONB{
				"stale_count": reviewed,
			})
			ctx.JSON(http.StatusOK, gin.H{"success": true, "count": reviewed})
		})
	return g
}
