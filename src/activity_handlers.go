package main

import (
	"clubops/src/common"
	"clubops/src/db"
	"clubops/src/models"
	"clubops/src/types"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultActivityLimit = 50

// changelog is a static release feed served to the admin surface.
var changelog = []types.ChangelogEntry{
	{
		Version: "1.4.0",
		Date:    "2026-08-10",
		Title:   "Bulk waiver review",
		Notes: []string{
			"Review every unreviewed fee waiver in one action",
			"Stale waivers are flagged after a week without review",
		},
	},
	{
		Version: "1.3.0",
		Date:    "2026-06-22",
		Title:   "Subscription sync",
		Notes: []string{
			"Mirror subscriptions and invoices from the payment processor on demand",
			"Cursor pagination on the billing browsers",
		},
	},
	{
		Version: "1.2.0",
		Date:    "2026-04-05",
		Title:   "Partial refunds",
		Notes: []string{
			"Refund part of a charge with the remainder tracked per transaction",
		},
	},
	{
		Version: "1.1.0",
		Date:    "2026-02-14",
		Title:   "Failed payment recovery",
		Notes: []string{
			"Retry failed charges up to three times",
			"Dunning notices go out daily for unresolved failures",
		},
	},
}

func activityHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/data-tools/staff-activity", func(ctx *gin.Context) {
			var filters types.StaffActivityQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			limit := filters.Limit
			if limit <= 0 || limit > 500 {
				limit = defaultActivityLimit
			}
			gdb := db.GetDb()
			q := gdb.
				Model(&models.AuditLog{}).
				Order("created_at desc").
				Limit(limit)
			if filters.StaffEmail != "" {
				q = q.Where("actor_email = ?", filters.StaffEmail)
			}
			if filters.ActorType != "" {
				q = q.Where("actor_type = ?", filters.ActorType)
			}
			if filters.Actions != "" {
				actions := strings.Split(filters.Actions, ",")
				q = q.Where("action IN ?", actions)
			}
			var logs []models.AuditLog
			if err := q.Find(&logs).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			data := make([]gin.H, 0, len(logs))
			for _, entry := range logs {
				if common.IsNoiseAction(entry.Action) {
					continue
				}
				display := common.DisplayForAction(entry.Action)
				data = append(data, gin.H{
					"entry":   entry,
					"display": display,
					"detail":  common.ExtractDetails(entry.Action, entry.Details),
				})
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data), "limit": limit})
		}).
		GET("/data-tools/changelog", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"data": changelog, "count": len(changelog)})
		})
	return g
}
