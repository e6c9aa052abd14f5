package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cartunez-in/cartunez-backend/database"
)

// Health handles GET /health with database status for monitoring.
func Health(c *fiber.Ctx) error {
	status := "healthy"
	statusCode := fiber.StatusOK
	dbHealthy := true

	if database.DB != nil {
		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			status = "unhealthy"
			statusCode = fiber.StatusServiceUnavailable
			dbHealthy = false
		}
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status": status,
		"services": fiber.Map{
			"database": dbHealthy,
		},
	})
}
