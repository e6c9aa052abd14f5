package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cartunez-in/cartunez-backend/internal/services"
)

// VehicleHandler serves the storefront vehicle-picker endpoints
type VehicleHandler struct {
	fitment *services.FitmentService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(fitment *services.FitmentService) *VehicleHandler {
	return &VehicleHandler{fitment: fitment}
}

// ListMakes handles GET /store/vehicles
func (h *VehicleHandler) ListMakes(c *fiber.Ctx) error {
	makes, err := h.fitment.ListMakesWithModels()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"makes": makes,
		"count": len(makes),
	})
}

// ListModels handles GET /store/vehicles/:makeId/models
func (h *VehicleHandler) ListModels(c *fiber.Ctx) error {
	makeID := c.Params("makeId")
	vmodels, err := h.fitment.ListModelsByMake(makeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"models": vmodels,
		"count":  len(vmodels),
	})
}

// ListVariants handles GET /store/vehicles/models/:modelId/variants
func (h *VehicleHandler) ListVariants(c *fiber.Ctx) error {
	modelID := c.Params("modelId")
	variants, err := h.fitment.ListVariantsByModel(modelID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"variants": variants,
		"count":    len(variants),
	})
}

// ListYears handles GET /store/vehicles/models/:modelId/years
func (h *VehicleHandler) ListYears(c *fiber.Ctx) error {
	modelID := c.Params("modelId")
	years, err := h.fitment.YearsForModel(modelID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"years": years,
		"count": len(years),
	})
}
