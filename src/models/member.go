package models

import "clubops/src/types"

type Member struct {
	ID               uint    `gorm:"primarykey" json:"id"`
	Name             string  `json:"name,omitempty"`
	Email            string  `gorm:"index" json:"email,omitempty"`
	Phone            string  `json:"phone,omitempty"`
	StripeCustomerId *string `json:"-"`

	Bookings []Booking `gorm:"foreignKey:member_id" json:"bookings,omitempty"`

	types.Timestamps
}
