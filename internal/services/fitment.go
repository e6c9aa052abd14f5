package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/cartunez-in/cartunez-backend/internal/apperrors"
	"github.com/cartunez-in/cartunez-backend/internal/models"
	"github.com/cartunez-in/cartunez-backend/internal/storage"
	"github.com/cartunez-in/cartunez-backend/internal/utils"
)

// FitmentService resolves product-to-vehicle compatibility across the
// make -> model -> variant hierarchy.
type FitmentService struct {
	store storage.Store
	now   func() time.Time
}

// NewFitmentService creates a new fitment service
func NewFitmentService(store storage.Store) *FitmentService {
	return &FitmentService{store: store, now: time.Now}
}

// ListMakesWithModels returns active makes with their active models nested,
// ordered by display_order then name.
func (s *FitmentService) ListMakesWithModels() ([]*models.VehicleMake, error) {
	return s.store.ListMakes(true)
}

// ListModelsByMake returns active models for a make.
func (s *FitmentService) ListModelsByMake(makeID string) ([]*models.VehicleModel, error) {
	return s.store.ListModelsByMake(makeID, true)
}

// ListVariantsByModel returns active variants for a model, newest year first.
func (s *FitmentService) ListVariantsByModel(modelID string) ([]*models.VehicleVariant, error) {
	return s.store.ListVariantsByModel(modelID, true)
}

// YearsForModel unions the year ranges of every active variant of the model,
// deduplicated and sorted descending. An open-ended variant (no year_end)
// expands through the current calendar year, so the result shifts at a year
// rollover.
func (s *FitmentService) YearsForModel(modelID string) ([]int, error) {
	variants, err := s.store.ListVariantsByModel(modelID, true)
	if err != nil {
		return nil, err
	}

	currentYear := s.now().Year()
	yearSet := make(map[int]struct{})
	for _, v := range variants {
		endYear := currentYear
		if v.YearEnd != nil {
			endYear = *v.YearEnd
		}
		for year := v.YearStart; year <= endYear; year++ {
			yearSet[year] = struct{}{}
		}
	}

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// FitmentCheck is the result of a product/variant compatibility lookup.
type FitmentCheck struct {
	Fits    bool                   `json:"fits"`
	Fitment *models.ProductFitment `json:"fitment,omitempty"`
}

// CheckFitment reports whether a product fits a specific vehicle variant.
// When duplicate rows exist for the pair, the first is returned; callers
// must not rely on which.
func (s *FitmentService) CheckFitment(productID, variantID string) (*FitmentCheck, error) {
	fitments, err := s.store.FindFitments(productID, variantID)
	if err != nil {
		return nil, err
	}
	if len(fitments) == 0 {
		return &FitmentCheck{Fits: false}, nil
	}
	return &FitmentCheck{Fits: true, Fitment: fitments[0]}, nil
}

// ProductMatch is one compatible product for a vehicle variant.
type ProductMatch struct {
	ProductID   string `json:"productId"`
	FitmentType string `json:"fitmentType"`
	Notes       string `json:"notes,omitempty"`
}

// ProductsForVehicle projects every fitment for a variant into a product
// reference. No dedup: duplicate fitments yield duplicate entries.
func (s *FitmentService) ProductsForVehicle(variantID string) ([]ProductMatch, error) {
	fitments, err := s.store.GetFitmentsByVariant(variantID)
	if err != nil {
		return nil, err
	}

	matches := make([]ProductMatch, 0, len(fitments))
	for _, f := range fitments {
		matches = append(matches, ProductMatch{
			ProductID:   f.ProductID,
			FitmentType: f.FitmentType,
			Notes:       f.FitmentNotes,
		})
	}
	return matches, nil
}

// VehiclesForProduct returns every fitment for a product with its variant,
// model and make resolved for display.
func (s *FitmentService) VehiclesForProduct(productID string) ([]*models.ProductFitment, error) {
	return s.store.GetFitmentsByProduct(productID)
}

// ListFitments lists fitments for the admin surface with optional filters
// and paging.
func (s *FitmentService) ListFitments(filter models.FitmentFilter) ([]*models.ProductFitment, error) {
	return s.store.ListFitments(filter)
}

// CreateFitment creates a single fitment mapping.
func (s *FitmentService) CreateFitment(input models.FitmentInput) (*models.ProductFitment, error) {
	if input.ProductID == "" || input.VariantID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "product_id and variant_id are required")
	}

	fitmentType := input.FitmentType
	if fitmentType == "" {
		fitmentType = models.FitmentTypeDirect
	}

	return s.store.CreateFitment(&models.ProductFitment{
		ProductID:            input.ProductID,
		VariantID:            input.VariantID,
		FitmentType:          fitmentType,
		FitmentNotes:         input.FitmentNotes,
		InstallationTimeMins: input.InstallationTimeMins,
		RequiresProfessional: input.RequiresProfessional,
	})
}

// BulkFitmentResult reports the outcome of one item in a bulk create.
type BulkFitmentResult struct {
	Index   int                    `json:"index"`
	Fitment *models.ProductFitment `json:"fitment,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// BulkCreateFitments inserts items sequentially. Inserts are not atomic:
// a failure partway leaves prior rows committed, and each failure is
// reported per item instead of aborting the batch.
func (s *FitmentService) BulkCreateFitments(items []models.FitmentInput) ([]BulkFitmentResult, error) {
	if len(items) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "fitments array is required")
	}

	results := make([]BulkFitmentResult, 0, len(items))
	for i, item := range items {
		fitment, err := s.CreateFitment(item)
		if err != nil {
			results = append(results, BulkFitmentResult{Index: i, Error: err.Error()})
			continue
		}
		results = append(results, BulkFitmentResult{Index: i, Fitment: fitment})
	}
	return results, nil
}

// ImportSummary tallies a CSV bulk import.
type ImportSummary struct {
	Created      int      `json:"created"`
	Errors       int      `json:"errors"`
	ErrorDetails []string `json:"error_details,omitempty"`
}

// ImportFitmentsCSV parses header-keyed CSV data (product_id, variant_id,
// fitment_type, fitment_notes) and creates the fitments row by row.
func (s *FitmentService) ImportFitmentsCSV(csvData string) (*ImportSummary, error) {
	records, err := utils.ParseCSVRecords(csvData)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}

	summary := &ImportSummary{}
	for i, record := range records {
		input := models.FitmentInput{
			ProductID:    record["product_id"],
			VariantID:    record["variant_id"],
			FitmentType:  record["fitment_type"],
			FitmentNotes: record["fitment_notes"],
		}
		if _, err := s.CreateFitment(input); err != nil {
			summary.Errors++
			summary.ErrorDetails = append(summary.ErrorDetails, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		summary.Created++
	}
	return summary, nil
}

// Admin catalog creation

// MakeInput describes a new vehicle make.
type MakeInput struct {
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
	Country      string `json:"country,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
	DisplayOrder int    `json:"display_order,omitempty"`
}

// CreateMake creates a vehicle make, deriving the slug from the name when
// none is supplied.
func (s *FitmentService) CreateMake(input MakeInput) (*models.VehicleMake, error) {
	if input.Name == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "name is required")
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	return s.store.CreateMake(&models.VehicleMake{
		Name:         input.Name,
		Slug:         slug,
		LogoURL:      input.LogoURL,
		Country:      input.Country,
		IsActive:     isActive,
		DisplayOrder: input.DisplayOrder,
	})
}

// ModelInput describes a new vehicle model under a make.
type ModelInput struct {
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	BodyType     string `json:"body_type,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
	DisplayOrder int    `json:"display_order,omitempty"`
}

// CreateModel creates a model under an existing make.
func (s *FitmentService) CreateModel(makeID string, input ModelInput) (*models.VehicleModel, error) {
	if makeID == "" || input.Name == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "makeId and name are required")
	}
	if _, err := s.store.GetMakeByID(makeID); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "make "+makeID)
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	return s.store.CreateModel(&models.VehicleModel{
		Name:         input.Name,
		Slug:         slug,
		MakeID:       makeID,
		BodyType:     input.BodyType,
		IsActive:     isActive,
		DisplayOrder: input.DisplayOrder,
	})
}

// VariantInput describes a new variant under a model.
type VariantInput struct {
	Name         string `json:"name"`
	YearStart    int    `json:"year_start"`
	YearEnd      *int   `json:"year_end,omitempty"`
	EngineType   string `json:"engine_type,omitempty"`
	EngineCC     int    `json:"engine_cc,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	FuelType     string `json:"fuel_type,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

// CreateVariant creates a variant under an existing model. year_end, when
// present, must not precede year_start.
func (s *FitmentService) CreateVariant(modelID string, input VariantInput) (*models.VehicleVariant, error) {
	if modelID == "" || input.Name == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "modelId and name are required")
	}
	if input.YearStart == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "year_start is required")
	}
	if input.YearEnd != nil && *input.YearEnd < input.YearStart {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput,
			"year_end "+strconv.Itoa(*input.YearEnd)+" precedes year_start "+strconv.Itoa(input.YearStart))
	}
	if _, err := s.store.GetModelByID(modelID); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "model "+modelID)
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	return s.store.CreateVariant(&models.VehicleVariant{
		ModelID:      modelID,
		Name:         input.Name,
		YearStart:    input.YearStart,
		YearEnd:      input.YearEnd,
		EngineType:   input.EngineType,
		EngineCC:     input.EngineCC,
		Transmission: input.Transmission,
		FuelType:     input.FuelType,
		IsActive:     isActive,
	})
}
