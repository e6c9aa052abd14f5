package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a storefront account created (or looked up) after a successful
// OTP verification. Phone is the primary identity.
type Customer struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Phone      string    `json:"phone" gorm:"uniqueIndex;not null"`
	Email      string    `json:"email,omitempty"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	HasAccount bool      `json:"has_account" gorm:"default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = "cus_" + uuid.NewString()
	}
	return nil
}
