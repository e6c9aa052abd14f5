package database

import (
	"fmt"
	"log"

	"github.com/cartunez-in/cartunez-backend/internal/models"
	"github.com/cartunez-in/cartunez-backend/internal/storage"
)

type seedModel struct {
	Name     string
	Slug     string
	BodyType string
	Variants []seedVariant
}

type seedVariant struct {
	Name      string
	YearStart int
	YearEnd   *int // nil = still in production
	FuelType  string
}

type seedMake struct {
	Name         string
	Slug         string
	Country      string
	DisplayOrder int
	Models       []seedModel
}

func year(y int) *int { return &y }

// Popular Indian makes/models used to bootstrap an empty catalog.
var vehicleSeedData = []seedMake{
	{
		Name: "Maruti Suzuki", Slug: "maruti-suzuki", Country: "India", DisplayOrder: 1,
		Models: []seedModel{
			{Name: "Swift", Slug: "swift", BodyType: "Hatchback", Variants: []seedVariant{
				{Name: "Swift ZXi", YearStart: 2018, YearEnd: year(2023), FuelType: "Petrol"},
				{Name: "Swift ZXi+ (4th gen)", YearStart: 2024, FuelType: "Petrol"},
			}},
			{Name: "Baleno", Slug: "baleno", BodyType: "Hatchback", Variants: []seedVariant{
				{Name: "Baleno Alpha", YearStart: 2022, FuelType: "Petrol"},
			}},
			{Name: "Brezza", Slug: "brezza", BodyType: "SUV", Variants: []seedVariant{
				{Name: "Brezza ZXi", YearStart: 2022, FuelType: "Petrol"},
			}},
		},
	},
	{
		Name: "Hyundai", Slug: "hyundai", Country: "South Korea", DisplayOrder: 2,
		Models: []seedModel{
			{Name: "Creta", Slug: "creta", BodyType: "SUV", Variants: []seedVariant{
				{Name: "Creta SX", YearStart: 2020, YearEnd: year(2023), FuelType: "Petrol"},
				{Name: "Creta SX(O) facelift", YearStart: 2024, FuelType: "Petrol"},
			}},
			{Name: "i20", Slug: "i20", BodyType: "Hatchback", Variants: []seedVariant{
				{Name: "i20 Asta", YearStart: 2020, FuelType: "Petrol"},
			}},
			{Name: "Venue", Slug: "venue", BodyType: "SUV", Variants: []seedVariant{
				{Name: "Venue SX", YearStart: 2019, FuelType: "Petrol"},
			}},
		},
	},
	{
		Name: "Tata Motors", Slug: "tata", Country: "India", DisplayOrder: 3,
		Models: []seedModel{
			{Name: "Nexon", Slug: "nexon", BodyType: "SUV", Variants: []seedVariant{
				{Name: "Nexon XZ+", YearStart: 2020, YearEnd: year(2023), FuelType: "Petrol"},
				{Name: "Nexon Fearless", YearStart: 2023, FuelType: "Petrol"},
			}},
			{Name: "Punch", Slug: "punch", BodyType: "SUV", Variants: []seedVariant{
				{Name: "Punch Creative", YearStart: 2021, FuelType: "Petrol"},
			}},
			{Name: "Altroz", Slug: "altroz", BodyType: "Hatchback", Variants: []seedVariant{
				{Name: "Altroz XZ", YearStart: 2020, FuelType: "Petrol"},
			}},
		},
	},
	{
		Name: "Mahindra", Slug: "mahindra", Country: "India", DisplayOrder: 4,
		Models: []seedModel{
			{Name: "Thar", Slug: "thar", BodyType: "SUV", Variants: []seedVariant{
				{Name: "Thar LX 4WD", YearStart: 2020, FuelType: "Diesel"},
			}},
			{Name: "XUV700", Slug: "xuv700", BodyType: "SUV", Variants: []seedVariant{
				{Name: "XUV700 AX7", YearStart: 2021, FuelType: "Diesel"},
			}},
			{Name: "Scorpio N", Slug: "scorpio-n", BodyType: "SUV", Variants: []seedVariant{
				{Name: "Scorpio N Z8", YearStart: 2022, FuelType: "Diesel"},
			}},
		},
	},
}

// SeedVehicles bootstraps the vehicle catalog when it is empty.
func SeedVehicles(store storage.Store) error {
	count, err := store.CountMakes()
	if err != nil {
		return fmt.Errorf("failed to count makes: %w", err)
	}
	if count > 0 {
		log.Printf("Vehicle catalog already seeded (%d makes)", count)
		return nil
	}

	var makes, modelCount, variantCount int
	for _, sm := range vehicleSeedData {
		mk, err := store.CreateMake(&models.VehicleMake{
			Name:         sm.Name,
			Slug:         sm.Slug,
			Country:      sm.Country,
			IsActive:     true,
			DisplayOrder: sm.DisplayOrder,
		})
		if err != nil {
			return fmt.Errorf("failed to seed make %s: %w", sm.Name, err)
		}
		makes++

		for _, smod := range sm.Models {
			vm, err := store.CreateModel(&models.VehicleModel{
				Name:     smod.Name,
				Slug:     smod.Slug,
				MakeID:   mk.ID,
				BodyType: smod.BodyType,
				IsActive: true,
			})
			if err != nil {
				return fmt.Errorf("failed to seed model %s: %w", smod.Name, err)
			}
			modelCount++

			for _, sv := range smod.Variants {
				_, err := store.CreateVariant(&models.VehicleVariant{
					ModelID:   vm.ID,
					Name:      sv.Name,
					YearStart: sv.YearStart,
					YearEnd:   sv.YearEnd,
					FuelType:  sv.FuelType,
					IsActive:  true,
				})
				if err != nil {
					return fmt.Errorf("failed to seed variant %s: %w", sv.Name, err)
				}
				variantCount++
			}
		}
	}

	log.Printf("✅ Seeded vehicle catalog: %d makes, %d models, %d variants",
		makes, modelCount, variantCount)
	return nil
}
