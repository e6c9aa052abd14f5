package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cartunez-in/cartunez-backend/internal/models"
	"github.com/cartunez-in/cartunez-backend/internal/services"
	"github.com/cartunez-in/cartunez-backend/internal/storage"
)

// AdminHandler serves catalog management and bulk import endpoints
type AdminHandler struct {
	fitment *services.FitmentService
	store   storage.Store
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(fitment *services.FitmentService, store storage.Store) *AdminHandler {
	return &AdminHandler{
		fitment: fitment,
		store:   store,
	}
}

// ListMakes handles GET /admin/vehicles — all makes including inactive ones.
func (h *AdminHandler) ListMakes(c *fiber.Ctx) error {
	makes, err := h.store.ListMakes(false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"makes": makes,
		"count": len(makes),
	})
}

// CreateMake handles POST /admin/vehicles
func (h *AdminHandler) CreateMake(c *fiber.Ctx) error {
	var input services.MakeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	mk, err := h.fitment.CreateMake(input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"make": mk})
}

// CreateModel handles POST /admin/vehicles/:makeId/models
func (h *AdminHandler) CreateModel(c *fiber.Ctx) error {
	var input services.ModelInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	vm, err := h.fitment.CreateModel(c.Params("makeId"), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"model": vm})
}

// CreateVariant handles POST /admin/vehicles/models/:modelId/variants
func (h *AdminHandler) CreateVariant(c *fiber.Ctx) error {
	var input services.VariantInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	variant, err := h.fitment.CreateVariant(c.Params("modelId"), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"variant": variant})
}

// ListFitments handles GET /admin/fitments with optional filters and paging.
func (h *AdminHandler) ListFitments(c *fiber.Ctx) error {
	filter := models.FitmentFilter{
		ProductID: c.Query("productId"),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	}
	if verified := c.Query("verified"); verified != "" {
		v, err := strconv.ParseBool(verified)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "verified must be true or false",
			})
		}
		filter.Verified = &v
	}

	fitments, err := h.fitment.ListFitments(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"fitments": fitments,
		"count":    len(fitments),
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// CreateFitment handles POST /admin/fitments
func (h *AdminHandler) CreateFitment(c *fiber.Ctx) error {
	var input models.FitmentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	fitment, err := h.fitment.CreateFitment(input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"fitment": fitment})
}

// BulkCreateFitments handles POST /admin/fitments/bulk. Items are inserted
// sequentially; per-item failures are reported without aborting the batch.
func (h *AdminHandler) BulkCreateFitments(c *fiber.Ctx) error {
	var body struct {
		Fitments []models.FitmentInput `json:"fitments"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	results, err := h.fitment.BulkCreateFitments(body.Fitments)
	if err != nil {
		return respondError(c, err)
	}

	created := 0
	for _, r := range results {
		if r.Error == "" {
			created++
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Bulk create completed",
		"created": created,
		"failed":  len(results) - created,
		"results": results,
	})
}

// ImportCSV handles POST /admin/import for CSV fitment data.
func (h *AdminHandler) ImportCSV(c *fiber.Ctx) error {
	var body struct {
		CSVData string `json:"csvData"`
		Type    string `json:"type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if body.CSVData == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No CSV data provided",
		})
	}
	if body.Type != "" && body.Type != "fitments" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported import type: " + body.Type,
		})
	}

	summary, err := h.fitment.ImportFitmentsCSV(body.CSVData)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      summary.Errors == 0,
		"type":         "fitments",
		"created":      summary.Created,
		"errors":       summary.Errors,
		"errorDetails": summary.ErrorDetails,
	})
}
