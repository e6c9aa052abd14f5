package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fitment types
const (
	FitmentTypeDirect      = "direct"
	FitmentTypeUniversal   = "universal"
	FitmentTypeWithAdapter = "with_adapter"
)

// ProductFitment maps a sellable product to a compatible vehicle variant.
// product_id references the catalog service and is not owned here.
// Uniqueness of (product_id, variant_id) is not enforced; duplicates can
// exist and callers must not rely on which row they get back.
type ProductFitment struct {
	ID                   string          `json:"id" gorm:"primaryKey"`
	ProductID            string          `json:"product_id" gorm:"not null;index"`
	VariantID            string          `json:"variant_id" gorm:"not null;index"`
	FitmentType          string          `json:"fitment_type" gorm:"default:direct"`
	FitmentNotes         string          `json:"fitment_notes,omitempty"`
	InstallationTimeMins *int            `json:"installation_time_mins,omitempty"`
	RequiresProfessional bool            `json:"requires_professional" gorm:"default:false"`
	IsVerified           bool            `json:"is_verified" gorm:"default:false"`
	Variant              *VehicleVariant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (f *ProductFitment) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = "fit_" + uuid.NewString()
	}
	return nil
}

// FitmentInput is one row of a fitment create request (single or bulk).
type FitmentInput struct {
	ProductID            string `json:"product_id"`
	VariantID            string `json:"variant_id"`
	FitmentType          string `json:"fitment_type,omitempty"`
	FitmentNotes         string `json:"fitment_notes,omitempty"`
	InstallationTimeMins *int   `json:"installation_time_mins,omitempty"`
	RequiresProfessional bool   `json:"requires_professional,omitempty"`
}

// FitmentFilter narrows admin fitment listings.
type FitmentFilter struct {
	ProductID string
	Verified  *bool
	Limit     int
	Offset    int
}
