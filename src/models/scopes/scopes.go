package scopes

import (
	"time"

	"gorm.io/gorm"
)

func WithStatus(status string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

func CreatedToday(db *gorm.DB) *gorm.DB {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return db.Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour))
}

func Unreviewed(db *gorm.DB) *gorm.DB {
	return db.Where("reviewed_at IS NULL")
}
