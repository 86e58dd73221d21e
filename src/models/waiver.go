package models

import (
	"clubops/src/types"
	"time"
)

// FeeWaiver is a granted fee waiver awaiting staff confirmation that the
// grant was intentional. ReviewedAt stays null until a staff review; the
// staleness sweep flips Stale for waivers unreviewed past the cutoff.
type FeeWaiver struct {
	ID        uint `gorm:"primarykey" json:"id"`
	BookingID uint `json:"booking_id"`

	AmountCents int64      `json:"amount_cents"`
	Reason      string     `json:"reason,omitempty"`
	GrantedBy   string     `json:"granted_by,omitempty"`
	Stale       bool       `gorm:"default:false" json:"stale"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy  *string    `json:"reviewed_by,omitempty"`

	Booking Booking `gorm:"foreignKey:booking_id" json:"-"`

	types.Timestamps
}
