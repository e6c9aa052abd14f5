package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleMake is a manufacturer (e.g. Maruti Suzuki, Hyundai, Tata Motors).
// Root of the make -> model -> variant hierarchy.
type VehicleMake struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null;index"`
	Slug         string         `json:"slug" gorm:"uniqueIndex;not null"`
	LogoURL      string         `json:"logo_url,omitempty"`
	Country      string         `json:"country,omitempty"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	DisplayOrder int            `json:"display_order" gorm:"default:0"`
	Models       []VehicleModel `json:"models,omitempty" gorm:"foreignKey:MakeID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (m *VehicleMake) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = "make_" + uuid.NewString()
	}
	return nil
}

// VehicleModel is a model line under a make (e.g. Swift, Creta, Nexon).
type VehicleModel struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null;index"`
	Slug         string    `json:"slug" gorm:"not null"`
	MakeID       string    `json:"make_id" gorm:"not null;index"`
	BodyType     string    `json:"body_type,omitempty"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	Make         *VehicleMake `json:"make,omitempty" gorm:"foreignKey:MakeID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m *VehicleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = "model_" + uuid.NewString()
	}
	return nil
}

// VehicleVariant is a specific trim/engine/year-range configuration of a
// model (e.g. Swift 2020 ZXi). Fitments always bind to a variant, never to a
// model, because compatibility is trim- and year-specific.
type VehicleVariant struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	ModelID      string    `json:"model_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	YearStart    int       `json:"year_start" gorm:"not null"`
	YearEnd      *int      `json:"year_end"` // nil = still in production
	EngineType   string    `json:"engine_type,omitempty"`
	EngineCC     int       `json:"engine_cc,omitempty"`
	Transmission string    `json:"transmission,omitempty"`
	FuelType     string    `json:"fuel_type,omitempty"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	Model        *VehicleModel `json:"model,omitempty" gorm:"foreignKey:ModelID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (v *VehicleVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = "variant_" + uuid.NewString()
	}
	return nil
}
