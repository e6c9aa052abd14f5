package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cartunez-in/cartunez-backend/internal/models"
)

// DatabaseStore implements Store on top of GORM/PostgreSQL
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Vehicle catalog operations

func (s *DatabaseStore) CreateMake(mk *models.VehicleMake) (*models.VehicleMake, error) {
	if err := s.db.Create(mk).Error; err != nil {
		return nil, fmt.Errorf("failed to create make: %w", err)
	}
	return mk, nil
}

func (s *DatabaseStore) GetMakeByID(id string) (*models.VehicleMake, error) {
	var mk models.VehicleMake
	if err := s.db.First(&mk, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("make not found")
		}
		return nil, err
	}
	return &mk, nil
}

func (s *DatabaseStore) ListMakes(activeOnly bool) ([]*models.VehicleMake, error) {
	query := s.db.Preload("Models", func(db *gorm.DB) *gorm.DB {
		if activeOnly {
			db = db.Where("is_active = ?", true)
		}
		return db.Order("display_order ASC, name ASC")
	})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var makes []*models.VehicleMake
	if err := query.Order("display_order ASC, name ASC").Find(&makes).Error; err != nil {
		return nil, fmt.Errorf("failed to list makes: %w", err)
	}
	return makes, nil
}

func (s *DatabaseStore) CreateModel(vm *models.VehicleModel) (*models.VehicleModel, error) {
	if err := s.db.Create(vm).Error; err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return vm, nil
}

func (s *DatabaseStore) GetModelByID(id string) (*models.VehicleModel, error) {
	var vm models.VehicleModel
	if err := s.db.First(&vm, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("model not found")
		}
		return nil, err
	}
	return &vm, nil
}

func (s *DatabaseStore) ListModelsByMake(makeID string, activeOnly bool) ([]*models.VehicleModel, error) {
	query := s.db.Where("make_id = ?", makeID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var vmodels []*models.VehicleModel
	if err := query.Order("display_order ASC, name ASC").Find(&vmodels).Error; err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return vmodels, nil
}

func (s *DatabaseStore) CreateVariant(v *models.VehicleVariant) (*models.VehicleVariant, error) {
	if err := s.db.Create(v).Error; err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return v, nil
}

func (s *DatabaseStore) GetVariantByID(id string) (*models.VehicleVariant, error) {
	var v models.VehicleVariant
	if err := s.db.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("variant not found")
		}
		return nil, err
	}
	return &v, nil
}

func (s *DatabaseStore) ListVariantsByModel(modelID string, activeOnly bool) ([]*models.VehicleVariant, error) {
	query := s.db.Where("model_id = ?", modelID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var variants []*models.VehicleVariant
	if err := query.Order("year_start DESC, name ASC").Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	return variants, nil
}

func (s *DatabaseStore) CountMakes() (int64, error) {
	var count int64
	if err := s.db.Model(&models.VehicleMake{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Fitment operations

func (s *DatabaseStore) CreateFitment(f *models.ProductFitment) (*models.ProductFitment, error) {
	if f.FitmentType == "" {
		f.FitmentType = models.FitmentTypeDirect
	}
	if err := s.db.Create(f).Error; err != nil {
		return nil, fmt.Errorf("failed to create fitment: %w", err)
	}
	return f, nil
}

func (s *DatabaseStore) FindFitments(productID, variantID string) ([]*models.ProductFitment, error) {
	var fitments []*models.ProductFitment
	err := s.db.
		Where("product_id = ? AND variant_id = ?", productID, variantID).
		Order("created_at ASC").
		Find(&fitments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find fitments: %w", err)
	}
	return fitments, nil
}

func (s *DatabaseStore) GetFitmentsByVariant(variantID string) ([]*models.ProductFitment, error) {
	var fitments []*models.ProductFitment
	err := s.db.
		Where("variant_id = ?", variantID).
		Order("created_at ASC").
		Find(&fitments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get fitments by variant: %w", err)
	}
	return fitments, nil
}

func (s *DatabaseStore) GetFitmentsByProduct(productID string) ([]*models.ProductFitment, error) {
	var fitments []*models.ProductFitment
	err := s.db.
		Preload("Variant").
		Preload("Variant.Model").
		Preload("Variant.Model.Make").
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&fitments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get fitments by product: %w", err)
	}
	return fitments, nil
}

func (s *DatabaseStore) ListFitments(filter models.FitmentFilter) ([]*models.ProductFitment, error) {
	query := s.db.
		Preload("Variant").
		Preload("Variant.Model").
		Preload("Variant.Model.Make")
	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Verified != nil {
		query = query.Where("is_verified = ?", *filter.Verified)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var fitments []*models.ProductFitment
	if err := query.Order("created_at ASC").Find(&fitments).Error; err != nil {
		return nil, fmt.Errorf("failed to list fitments: %w", err)
	}
	return fitments, nil
}

// OTP operations

// ReplaceOtpRequest deletes any unverified request for the phone and inserts
// the new one inside a single transaction, closing the race between two
// concurrent sends for the same phone.
func (s *DatabaseStore) ReplaceOtpRequest(req *models.OtpRequest) (*models.OtpRequest, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone = ? AND is_verified = ?", req.Phone, false).
			Delete(&models.OtpRequest{}).Error; err != nil {
			return err
		}
		return tx.Create(req).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace otp request: %w", err)
	}
	return req, nil
}

func (s *DatabaseStore) GetActiveOtpRequest(phone string) (*models.OtpRequest, error) {
	var req models.OtpRequest
	err := s.db.
		Where("phone = ? AND is_verified = ?", phone, false).
		Order("created_at DESC").
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("otp request not found")
		}
		return nil, err
	}
	return &req, nil
}

func (s *DatabaseStore) UpdateOtpRequest(req *models.OtpRequest) error {
	return s.db.Save(req).Error
}

func (s *DatabaseStore) DeleteOtpRequest(id string) error {
	return s.db.Delete(&models.OtpRequest{}, "id = ?", id).Error
}

func (s *DatabaseStore) DeleteExpiredOtpRequests() (int64, error) {
	result := s.db.Where("expires_at < ?", time.Now()).Delete(&models.OtpRequest{})
	return result.RowsAffected, result.Error
}

// Customer operations

func (s *DatabaseStore) CreateCustomer(c *models.Customer) (*models.Customer, error) {
	if err := s.db.Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return c, nil
}

func (s *DatabaseStore) GetCustomerByPhone(phone string) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.First(&c, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer not found")
		}
		return nil, err
	}
	return &c, nil
}
