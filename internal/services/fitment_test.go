package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cartunez-in/cartunez-backend/internal/apperrors"
	"github.com/cartunez-in/cartunez-backend/internal/models"
	"github.com/cartunez-in/cartunez-backend/internal/storage"
)

func newTestFitmentService(t *testing.T) (*FitmentService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	svc := NewFitmentService(store)
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, store
}

// seedCatalog creates one make/model with two variants: a closed range
// 2015-2019 and an open-ended range starting 2022.
func seedCatalog(t *testing.T, svc *FitmentService) (makeID, modelID, closedVariantID, openVariantID string) {
	t.Helper()

	mk, err := svc.CreateMake(MakeInput{Name: "Maruti Suzuki"})
	if err != nil {
		t.Fatalf("CreateMake: %v", err)
	}
	mdl, err := svc.CreateModel(mk.ID, ModelInput{Name: "Swift", BodyType: "hatchback"})
	if err != nil {
		t.Fatalf("CreateModel: %v", err)
	}

	endYear := 2019
	closed, err := svc.CreateVariant(mdl.ID, VariantInput{
		Name: "VXi", YearStart: 2015, YearEnd: &endYear, FuelType: "petrol",
	})
	if err != nil {
		t.Fatalf("CreateVariant closed: %v", err)
	}
	open, err := svc.CreateVariant(mdl.ID, VariantInput{
		Name: "ZXi", YearStart: 2022, FuelType: "petrol",
	})
	if err != nil {
		t.Fatalf("CreateVariant open: %v", err)
	}
	return mk.ID, mdl.ID, closed.ID, open.ID
}

func TestCreateMake_SlugAndDefaults(t *testing.T) {
	svc, _ := newTestFitmentService(t)

	mk, err := svc.CreateMake(MakeInput{Name: "Tata Motors"})
	if err != nil {
		t.Fatalf("CreateMake: %v", err)
	}
	if mk.Slug != "tata-motors" {
		t.Errorf("Slug = %q, want tata-motors", mk.Slug)
	}
	if !mk.IsActive {
		t.Error("new make should default to active")
	}
	if !strings.HasPrefix(mk.ID, "make_") {
		t.Errorf("ID = %q, want make_ prefix", mk.ID)
	}

	if _, err := svc.CreateMake(MakeInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("CreateMake without name = %v, want ErrInvalidInput", err)
	}
}

func TestCreateModel_UnknownMake(t *testing.T) {
	svc, _ := newTestFitmentService(t)
	_, err := svc.CreateModel("make_missing", ModelInput{Name: "Nexon"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("CreateModel = %v, want ErrNotFound", err)
	}
}

func TestCreateVariant_YearValidation(t *testing.T) {
	svc, _ := newTestFitmentService(t)
	_, modelID, _, _ := seedCatalog(t, svc)

	end := 2018
	_, err := svc.CreateVariant(modelID, VariantInput{Name: "LXi", YearStart: 2020, YearEnd: &end})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("year_end before year_start = %v, want ErrInvalidInput", err)
	}

	// Single-year range is fine.
	same := 2020
	if _, err := svc.CreateVariant(modelID, VariantInput{Name: "LXi", YearStart: 2020, YearEnd: &same}); err != nil {
		t.Fatalf("single-year variant: %v", err)
	}

	if _, err := svc.CreateVariant(modelID, VariantInput{Name: "LXi"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("missing year_start = %v, want ErrInvalidInput", err)
	}
}

func TestYearsForModel(t *testing.T) {
	svc, _ := newTestFitmentService(t)
	_, modelID, _, _ := seedCatalog(t, svc)

	years, err := svc.YearsForModel(modelID)
	if err != nil {
		t.Fatalf("YearsForModel: %v", err)
	}

	// Closed 2015-2019 plus open-ended 2022 through the current year (2025),
	// descending with the 2020-2021 gap preserved.
	want := []int{2025, 2024, 2023, 2022, 2019, 2018, 2017, 2016, 2015}
	if len(years) != len(want) {
		t.Fatalf("years = %v, want %v", years, want)
	}
	for i := range want {
		if years[i] != want[i] {
			t.Fatalf("years = %v, want %v", years, want)
		}
	}
}

func TestYearsForModel_TracksCurrentYear(t *testing.T) {
	svc, _ := newTestFitmentService(t)
	_, modelID, _, _ := seedCatalog(t, svc)

	svc.now = func() time.Time {
		return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	years, err := svc.YearsForModel(modelID)
	if err != nil {
		t.Fatalf("YearsForModel: %v", err)
	}
	if years[0] != 2026 {
		t.Errorf("first year = %d, want 2026 after rollover", years[0])
	}
}

func TestCheckFitment(t *testing.T) {
	svc, _ := newTestFitmentService(t)
	_, _, closedID, openID := seedCatalog(t, svc)

	if _, err := svc.CreateFitment(models.FitmentInput{ProductID: "prod_brake", VariantID: closedID}); err != nil {
		t.Fatalf("CreateFitment: %v", err)
	}

	check, err := svc.CheckFitment("prod_brake", closedID)
	if err != nil {
		t.Fatalf("CheckFitment: %v", err)
	}
	if !check.Fits || check.Fitment == nil {
		t.Fatalf("check = %+v, want fits with fitment", check)
	}
	if check.Fitment.FitmentType != models.FitmentTypeDirect {
		t.Errorf("FitmentType = %q, want default direct", check.Fitment.FitmentType)
	}

	// Same product, different variant: no fit even though the product has
	// fitments elsewhere.
	check, err = svc.CheckFitment("prod_brake", openID)
	if err != nil {
		t.Fatalf("CheckFitment: %v", err)
	}
	if check.Fits || check.Fitment != nil {
		t.Errorf("check = %+v, want no fit", check)
	}
}

func TestProductsForVehicle_NoDedup(t *testing.T) {
	svc, _ := newTestFitmentService(t)
	_, _, closedID, _ := seedCatalog(t, svc)

	for i := 0; i < 2; i++ {
		if _, err := svc.CreateFitment(models.FitmentInput{ProductID: "prod_filter", VariantID: closedID}); err != nil {
			t.Fatalf("CreateFitment: %v", err)
		}
	}

	matches, err := svc.ProductsForVehicle(closedID)
	if err != nil {
		t.Fatalf("ProductsForVehicle: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2 (duplicates preserved)", len(matches))
	}
	for _, m := range matches {
		if m.ProductID != "prod_filter" {
			t.Errorf("ProductID = %q", m.ProductID)
		}
	}
}

func TestVehiclesForProduct_ResolvesChain(t *testing.T) {
	svc, _ := newTestFitmentService(t)
	_, _, closedID, _ := seedCatalog(t, svc)

	if _, err := svc.CreateFitment(models.FitmentInput{ProductID: "prod_clutch", VariantID: closedID}); err != nil {
		t.Fatalf("CreateFitment: %v", err)
	}

	fitments, err := svc.VehiclesForProduct("prod_clutch")
	if err != nil {
		t.Fatalf("VehiclesForProduct: %v", err)
	}
	if len(fitments) != 1 {
		t.Fatalf("len(fitments) = %d, want 1", len(fitments))
	}

	f := fitments[0]
	if f.Variant == nil || f.Variant.Model == nil || f.Variant.Model.Make == nil {
		t.Fatalf("variant chain not resolved: %+v", f.Variant)
	}
	if f.Variant.Model.Make.Name != "Maruti Suzuki" || f.Variant.Model.Name != "Swift" {
		t.Errorf("chain = %s / %s", f.Variant.Model.Make.Name, f.Variant.Model.Name)
	}
}

func TestBulkCreateFitments_PartialFailure(t *testing.T) {
	svc, _ := newTestFitmentService(t)
	_, _, closedID, _ := seedCatalog(t, svc)

	results, err := svc.BulkCreateFitments([]models.FitmentInput{
		{ProductID: "prod_a", VariantID: closedID},
		{ProductID: "", VariantID: closedID}, // missing product_id
		{ProductID: "prod_b", VariantID: closedID},
	})
	if err != nil {
		t.Fatalf("BulkCreateFitments: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if results[0].Fitment == nil || results[0].Error != "" {
		t.Errorf("results[0] = %+v, want success", results[0])
	}
	if results[1].Fitment != nil || results[1].Error == "" {
		t.Errorf("results[1] = %+v, want failure", results[1])
	}
	if results[2].Fitment == nil {
		t.Errorf("results[2] = %+v, want success after earlier failure", results[2])
	}

	// Committed rows survive the mid-batch failure.
	if check, _ := svc.CheckFitment("prod_b", closedID); !check.Fits {
		t.Error("prod_b fitment should be committed")
	}

	if _, err := svc.BulkCreateFitments(nil); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("empty batch = %v, want ErrInvalidInput", err)
	}
}

func TestImportFitmentsCSV(t *testing.T) {
	svc, _ := newTestFitmentService(t)
	_, _, closedID, _ := seedCatalog(t, svc)

	csvData := "product_id,variant_id,fitment_type,fitment_notes\n" +
		"prod_x," + closedID + ",direct,front axle only\n" +
		",missing_product,direct,\n" +
		"prod_y," + closedID + ",universal,\n"

	summary, err := svc.ImportFitmentsCSV(csvData)
	if err != nil {
		t.Fatalf("ImportFitmentsCSV: %v", err)
	}
	if summary.Created != 2 || summary.Errors != 1 {
		t.Fatalf("summary = %+v, want 2 created / 1 error", summary)
	}
	if len(summary.ErrorDetails) != 1 || !strings.HasPrefix(summary.ErrorDetails[0], "row 2:") {
		t.Errorf("ErrorDetails = %v", summary.ErrorDetails)
	}

	check, err := svc.CheckFitment("prod_y", closedID)
	if err != nil {
		t.Fatalf("CheckFitment: %v", err)
	}
	if !check.Fits || check.Fitment.FitmentType != models.FitmentTypeUniversal {
		t.Errorf("imported fitment = %+v", check.Fitment)
	}
}

func TestListMakesWithModels_Ordering(t *testing.T) {
	svc, _ := newTestFitmentService(t)

	// Deliberately created out of display order.
	if _, err := svc.CreateMake(MakeInput{Name: "Hyundai", DisplayOrder: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateMake(MakeInput{Name: "Maruti Suzuki", DisplayOrder: 1}); err != nil {
		t.Fatal(err)
	}
	inactive := false
	if _, err := svc.CreateMake(MakeInput{Name: "Ambassador", DisplayOrder: 0, IsActive: &inactive}); err != nil {
		t.Fatal(err)
	}

	makes, err := svc.ListMakesWithModels()
	if err != nil {
		t.Fatalf("ListMakesWithModels: %v", err)
	}
	if len(makes) != 2 {
		t.Fatalf("len(makes) = %d, want inactive excluded", len(makes))
	}
	if makes[0].Name != "Maruti Suzuki" || makes[1].Name != "Hyundai" {
		t.Errorf("order = %s, %s", makes[0].Name, makes[1].Name)
	}
}
