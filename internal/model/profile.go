package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a storefront customer account, keyed by the auth user id.
type Profile struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	FullName     string    `gorm:"type:varchar(255)" json:"full_name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	MobileNumber string    `gorm:"type:varchar(20)" json:"mobile_number"`
	IsBlocked    bool      `gorm:"default:false" json:"is_blocked"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
