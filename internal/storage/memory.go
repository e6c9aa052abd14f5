package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cartunez-in/cartunez-backend/internal/models"
)

// MemoryStore holds all data in memory for tests and local development
type MemoryStore struct {
	makes     map[string]*models.VehicleMake
	vmodels   map[string]*models.VehicleModel
	variants  map[string]*models.VehicleVariant
	fitments  map[string]*models.ProductFitment
	otps      map[string]*models.OtpRequest
	customers map[string]*models.Customer

	// Mutexes for thread safety
	catalogMu  sync.RWMutex
	fitmentMu  sync.RWMutex
	otpMu      sync.Mutex
	customerMu sync.RWMutex
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		makes:     make(map[string]*models.VehicleMake),
		vmodels:   make(map[string]*models.VehicleModel),
		variants:  make(map[string]*models.VehicleVariant),
		fitments:  make(map[string]*models.ProductFitment),
		otps:      make(map[string]*models.OtpRequest),
		customers: make(map[string]*models.Customer),
	}
}

// Vehicle catalog operations

func (m *MemoryStore) CreateMake(mk *models.VehicleMake) (*models.VehicleMake, error) {
	m.catalogMu.Lock()
	defer m.catalogMu.Unlock()

	for _, existing := range m.makes {
		if strings.EqualFold(existing.Slug, mk.Slug) {
			return nil, fmt.Errorf("make with slug %q already exists", mk.Slug)
		}
	}

	if mk.ID == "" {
		mk.ID = "make_" + uuid.NewString()
	}
	mk.CreatedAt = time.Now()
	mk.UpdatedAt = time.Now()
	m.makes[mk.ID] = mk
	return mk, nil
}

func (m *MemoryStore) GetMakeByID(id string) (*models.VehicleMake, error) {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()

	mk, exists := m.makes[id]
	if !exists {
		return nil, fmt.Errorf("make not found")
	}
	return mk, nil
}

func (m *MemoryStore) ListMakes(activeOnly bool) ([]*models.VehicleMake, error) {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()

	var makes []*models.VehicleMake
	for _, mk := range m.makes {
		if activeOnly && !mk.IsActive {
			continue
		}
		mc := *mk
		mc.Models = m.modelsForMakeLocked(mk.ID, activeOnly)
		makes = append(makes, &mc)
	}

	sort.Slice(makes, func(i, j int) bool {
		if makes[i].DisplayOrder != makes[j].DisplayOrder {
			return makes[i].DisplayOrder < makes[j].DisplayOrder
		}
		return makes[i].Name < makes[j].Name
	})
	return makes, nil
}

// modelsForMakeLocked collects sorted models for a make; caller holds catalogMu.
func (m *MemoryStore) modelsForMakeLocked(makeID string, activeOnly bool) []models.VehicleModel {
	var out []models.VehicleModel
	for _, vm := range m.vmodels {
		if vm.MakeID != makeID {
			continue
		}
		if activeOnly && !vm.IsActive {
			continue
		}
		out = append(out, *vm)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (m *MemoryStore) CreateModel(vm *models.VehicleModel) (*models.VehicleModel, error) {
	m.catalogMu.Lock()
	defer m.catalogMu.Unlock()

	if _, exists := m.makes[vm.MakeID]; !exists {
		return nil, fmt.Errorf("make not found")
	}

	if vm.ID == "" {
		vm.ID = "model_" + uuid.NewString()
	}
	vm.CreatedAt = time.Now()
	vm.UpdatedAt = time.Now()
	m.vmodels[vm.ID] = vm
	return vm, nil
}

func (m *MemoryStore) GetModelByID(id string) (*models.VehicleModel, error) {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()

	vm, exists := m.vmodels[id]
	if !exists {
		return nil, fmt.Errorf("model not found")
	}
	return vm, nil
}

func (m *MemoryStore) ListModelsByMake(makeID string, activeOnly bool) ([]*models.VehicleModel, error) {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()

	sorted := m.modelsForMakeLocked(makeID, activeOnly)
	out := make([]*models.VehicleModel, len(sorted))
	for i := range sorted {
		vm := sorted[i]
		out[i] = &vm
	}
	return out, nil
}

func (m *MemoryStore) CreateVariant(v *models.VehicleVariant) (*models.VehicleVariant, error) {
	m.catalogMu.Lock()
	defer m.catalogMu.Unlock()

	if _, exists := m.vmodels[v.ModelID]; !exists {
		return nil, fmt.Errorf("model not found")
	}

	if v.ID == "" {
		v.ID = "variant_" + uuid.NewString()
	}
	v.CreatedAt = time.Now()
	v.UpdatedAt = time.Now()
	m.variants[v.ID] = v
	return v, nil
}

func (m *MemoryStore) GetVariantByID(id string) (*models.VehicleVariant, error) {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()

	v, exists := m.variants[id]
	if !exists {
		return nil, fmt.Errorf("variant not found")
	}
	return v, nil
}

func (m *MemoryStore) ListVariantsByModel(modelID string, activeOnly bool) ([]*models.VehicleVariant, error) {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()

	var out []*models.VehicleVariant
	for _, v := range m.variants {
		if v.ModelID != modelID {
			continue
		}
		if activeOnly && !v.IsActive {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].YearStart != out[j].YearStart {
			return out[i].YearStart > out[j].YearStart
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *MemoryStore) CountMakes() (int64, error) {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()
	return int64(len(m.makes)), nil
}

// Fitment operations

func (m *MemoryStore) CreateFitment(f *models.ProductFitment) (*models.ProductFitment, error) {
	m.catalogMu.RLock()
	_, variantExists := m.variants[f.VariantID]
	m.catalogMu.RUnlock()
	if !variantExists {
		return nil, fmt.Errorf("variant not found")
	}

	m.fitmentMu.Lock()
	defer m.fitmentMu.Unlock()

	if f.ID == "" {
		f.ID = "fit_" + uuid.NewString()
	}
	if f.FitmentType == "" {
		f.FitmentType = models.FitmentTypeDirect
	}
	f.CreatedAt = time.Now()
	f.UpdatedAt = time.Now()
	m.fitments[f.ID] = f
	return f, nil
}

func (m *MemoryStore) FindFitments(productID, variantID string) ([]*models.ProductFitment, error) {
	m.fitmentMu.RLock()
	defer m.fitmentMu.RUnlock()

	var out []*models.ProductFitment
	for _, f := range m.fitments {
		if f.ProductID == productID && f.VariantID == variantID {
			out = append(out, f)
		}
	}
	sortFitmentsByCreated(out)
	return out, nil
}

func (m *MemoryStore) GetFitmentsByVariant(variantID string) ([]*models.ProductFitment, error) {
	m.fitmentMu.RLock()
	defer m.fitmentMu.RUnlock()

	var out []*models.ProductFitment
	for _, f := range m.fitments {
		if f.VariantID == variantID {
			out = append(out, f)
		}
	}
	sortFitmentsByCreated(out)
	return out, nil
}

func (m *MemoryStore) GetFitmentsByProduct(productID string) ([]*models.ProductFitment, error) {
	m.fitmentMu.RLock()
	defer m.fitmentMu.RUnlock()

	var out []*models.ProductFitment
	for _, f := range m.fitments {
		if f.ProductID != productID {
			continue
		}
		fc := *f
		fc.Variant = m.resolveVariantChain(f.VariantID)
		out = append(out, &fc)
	}
	sortFitmentsByCreated(out)
	return out, nil
}

func (m *MemoryStore) ListFitments(filter models.FitmentFilter) ([]*models.ProductFitment, error) {
	m.fitmentMu.RLock()
	defer m.fitmentMu.RUnlock()

	var out []*models.ProductFitment
	for _, f := range m.fitments {
		if filter.ProductID != "" && f.ProductID != filter.ProductID {
			continue
		}
		if filter.Verified != nil && f.IsVerified != *filter.Verified {
			continue
		}
		fc := *f
		fc.Variant = m.resolveVariantChain(f.VariantID)
		out = append(out, &fc)
	}
	sortFitmentsByCreated(out)

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// resolveVariantChain mirrors the database store's variant -> model -> make
// eager loading.
func (m *MemoryStore) resolveVariantChain(variantID string) *models.VehicleVariant {
	m.catalogMu.RLock()
	defer m.catalogMu.RUnlock()

	v, exists := m.variants[variantID]
	if !exists {
		return nil
	}
	vc := *v
	if vm, ok := m.vmodels[v.ModelID]; ok {
		vmc := *vm
		if mk, ok := m.makes[vm.MakeID]; ok {
			mkc := *mk
			vmc.Make = &mkc
		}
		vc.Model = &vmc
	}
	return &vc
}

func sortFitmentsByCreated(fitments []*models.ProductFitment) {
	sort.Slice(fitments, func(i, j int) bool {
		if fitments[i].CreatedAt.Equal(fitments[j].CreatedAt) {
			return fitments[i].ID < fitments[j].ID
		}
		return fitments[i].CreatedAt.Before(fitments[j].CreatedAt)
	})
}

// OTP operations

// ReplaceOtpRequest deletes any unverified request for the phone and stores
// the new one under a single lock, so two concurrent sends cannot leave two
// live rows.
func (m *MemoryStore) ReplaceOtpRequest(req *models.OtpRequest) (*models.OtpRequest, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	for id, existing := range m.otps {
		if existing.Phone == req.Phone && !existing.IsVerified {
			delete(m.otps, id)
		}
	}

	if req.ID == "" {
		req.ID = "otp_" + uuid.NewString()
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()
	m.otps[req.ID] = req
	return req, nil
}

func (m *MemoryStore) GetActiveOtpRequest(phone string) (*models.OtpRequest, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	var latest *models.OtpRequest
	for _, req := range m.otps {
		if req.Phone != phone || req.IsVerified {
			continue
		}
		if latest == nil || req.CreatedAt.After(latest.CreatedAt) {
			latest = req
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("otp request not found")
	}
	return latest, nil
}

func (m *MemoryStore) UpdateOtpRequest(req *models.OtpRequest) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	if _, exists := m.otps[req.ID]; !exists {
		return fmt.Errorf("otp request not found")
	}
	req.UpdatedAt = time.Now()
	m.otps[req.ID] = req
	return nil
}

func (m *MemoryStore) DeleteOtpRequest(id string) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	delete(m.otps, id)
	return nil
}

func (m *MemoryStore) DeleteExpiredOtpRequests() (int64, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	var deleted int64
	now := time.Now()
	for id, req := range m.otps {
		if now.After(req.ExpiresAt) {
			delete(m.otps, id)
			deleted++
		}
	}
	return deleted, nil
}

// Customer operations

func (m *MemoryStore) CreateCustomer(c *models.Customer) (*models.Customer, error) {
	m.customerMu.Lock()
	defer m.customerMu.Unlock()

	for _, existing := range m.customers {
		if existing.Phone == c.Phone {
			return nil, fmt.Errorf("customer with phone already exists")
		}
	}

	if c.ID == "" {
		c.ID = "cus_" + uuid.NewString()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	m.customers[c.ID] = c
	return c, nil
}

func (m *MemoryStore) GetCustomerByPhone(phone string) (*models.Customer, error) {
	m.customerMu.RLock()
	defer m.customerMu.RUnlock()

	for _, c := range m.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, fmt.Errorf("customer not found")
}
