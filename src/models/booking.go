package models

import (
	"clubops/src/types"
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	SessionID *uuid.UUID `gorm:"type:uuid" json:"session_id,omitempty"`
	MemberID  uint       `json:"member_id,omitempty"`

	ResourceName string              `json:"resource_name,omitempty"`
	StartsAt     *time.Time          `json:"starts_at,omitempty"`
	EndsAt       *time.Time          `json:"ends_at,omitempty"`
	Status       types.BookingStatus `gorm:"default:'confirmed'" json:"status,omitempty"`

	// BalanceDue is whole dollars, unlike every cents-based amount elsewhere.
	BalanceDue float64 `json:"balance_due"`

	Member  *Member     `gorm:"foreignKey:member_id" json:"member,omitempty"`
	Waivers []FeeWaiver `gorm:"foreignKey:booking_id" json:"waivers,omitempty"`

	types.Timestamps
}
