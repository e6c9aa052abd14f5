package storage

import (
	"github.com/cartunez-in/cartunez-backend/internal/models"
)

// Store defines the interface for storage operations
type Store interface {
	// Vehicle catalog operations
	CreateMake(make *models.VehicleMake) (*models.VehicleMake, error)
	GetMakeByID(id string) (*models.VehicleMake, error)
	ListMakes(activeOnly bool) ([]*models.VehicleMake, error)
	CreateModel(model *models.VehicleModel) (*models.VehicleModel, error)
	GetModelByID(id string) (*models.VehicleModel, error)
	ListModelsByMake(makeID string, activeOnly bool) ([]*models.VehicleModel, error)
	CreateVariant(variant *models.VehicleVariant) (*models.VehicleVariant, error)
	GetVariantByID(id string) (*models.VehicleVariant, error)
	ListVariantsByModel(modelID string, activeOnly bool) ([]*models.VehicleVariant, error)
	CountMakes() (int64, error)

	// Fitment operations
	CreateFitment(fitment *models.ProductFitment) (*models.ProductFitment, error)
	FindFitments(productID, variantID string) ([]*models.ProductFitment, error)
	GetFitmentsByVariant(variantID string) ([]*models.ProductFitment, error)
	GetFitmentsByProduct(productID string) ([]*models.ProductFitment, error)
	ListFitments(filter models.FitmentFilter) ([]*models.ProductFitment, error)

	// OTP operations
	ReplaceOtpRequest(req *models.OtpRequest) (*models.OtpRequest, error)
	GetActiveOtpRequest(phone string) (*models.OtpRequest, error)
	UpdateOtpRequest(req *models.OtpRequest) error
	DeleteOtpRequest(id string) error
	DeleteExpiredOtpRequests() (int64, error)

	// Customer operations
	CreateCustomer(customer *models.Customer) (*models.Customer, error)
	GetCustomerByPhone(phone string) (*models.Customer, error)
}
