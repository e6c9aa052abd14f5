package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cartunez-in/cartunez-backend/internal/services"
)

// FitmentHandler serves the storefront compatibility endpoints
type FitmentHandler struct {
	fitment *services.FitmentService
}

// NewFitmentHandler creates a new fitment handler
func NewFitmentHandler(fitment *services.FitmentService) *FitmentHandler {
	return &FitmentHandler{fitment: fitment}
}

// Check handles POST /store/fitment/check
func (h *FitmentHandler) Check(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
		VariantID string `json:"variantId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if body.ProductID == "" || body.VariantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "productId and variantId are required",
		})
	}

	result, err := h.fitment.CheckFitment(body.ProductID, body.VariantID)
	if err != nil {
		return respondError(c, err)
	}

	response := fiber.Map{"fits": result.Fits}
	if result.Fitment != nil {
		response["fitment"] = fiber.Map{
			"type":                 result.Fitment.FitmentType,
			"notes":                result.Fitment.FitmentNotes,
			"installationTime":     result.Fitment.InstallationTimeMins,
			"requiresProfessional": result.Fitment.RequiresProfessional,
			"isVerified":           result.Fitment.IsVerified,
		}
	}
	return c.JSON(response)
}

// Lookup handles GET /store/fitment?variantId=... or ?productId=...
func (h *FitmentHandler) Lookup(c *fiber.Ctx) error {
	variantID := c.Query("variantId")
	productID := c.Query("productId")

	if variantID == "" && productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Either variantId or productId query param is required",
		})
	}

	if variantID != "" {
		products, err := h.fitment.ProductsForVehicle(variantID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"type":      "products_for_vehicle",
			"variantId": variantID,
			"products":  products,
			"count":     len(products),
		})
	}

	fitments, err := h.fitment.VehiclesForProduct(productID)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]fiber.Map, 0, len(fitments))
	for _, f := range fitments {
		vehicle := fiber.Map{}
		if f.Variant != nil {
			vehicle["variant"] = f.Variant.Name
			vehicle["yearStart"] = f.Variant.YearStart
			vehicle["yearEnd"] = f.Variant.YearEnd
			if f.Variant.Model != nil {
				vehicle["model"] = f.Variant.Model.Name
				if f.Variant.Model.Make != nil {
					vehicle["make"] = f.Variant.Model.Make.Name
				}
			}
		}
		out = append(out, fiber.Map{
			"id":          f.ID,
			"vehicle":     vehicle,
			"fitmentType": f.FitmentType,
			"notes":       f.FitmentNotes,
		})
	}

	return c.JSON(fiber.Map{
		"type":      "vehicles_for_product",
		"productId": productID,
		"fitments":  out,
		"count":     len(out),
	})
}
