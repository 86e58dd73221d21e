package models

import "clubops/src/types"

// User is a staff account. Sessions are issued by the identity service;
// this table only mirrors what the auth middleware needs.
type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"index" json:"email,omitempty"`
	Role  string `gorm:"default:'staff'" json:"role,omitempty"`
	UID   string `json:"uid,omitempty"`

	types.Timestamps
}
