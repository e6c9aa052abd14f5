package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OtpRequest stores a one-time code for phone verification. Ephemeral: a new
// request for the same phone replaces the old one, and records are purged on
// expiry, verification, or attempts exhaustion.
type OtpRequest struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Phone      string    `json:"phone" gorm:"not null;index"` // 10-digit, digits only
	OTP        string    `json:"-" gorm:"not null"`
	IsVerified bool      `json:"is_verified" gorm:"default:false"`
	Attempts   int       `json:"attempts" gorm:"default:0"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (o *OtpRequest) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = "otp_" + uuid.NewString()
	}
	return nil
}
