package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/cartunez-in/cartunez-backend/internal/handlers"
	"github.com/cartunez-in/cartunez-backend/internal/middleware"
	"github.com/cartunez-in/cartunez-backend/internal/services"
	"github.com/cartunez-in/cartunez-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, otp *services.OTPService,
	fitment *services.FitmentService, cod *services.CODService,
	razorpay *services.RazorpayService, tokens *services.TokenService) {

	authHandler := handlers.NewAuthHandler(otp, tokens, store)
	vehicleHandler := handlers.NewVehicleHandler(fitment)
	fitmentHandler := handlers.NewFitmentHandler(fitment)
	paymentHandler := handlers.NewPaymentHandler(razorpay, cod)
	adminHandler := handlers.NewAdminHandler(fitment, store)

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to CarTunez Backend!",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health": "/health",
				"store":  "/store",
				"admin":  "/admin",
			},
		})
	})

	app.Get("/health", handlers.Health)

	// ========== STOREFRONT ROUTES ==========
	storefront := app.Group("/store")

	auth := storefront.Group("/auth/otp")
	auth.Post("/send", authHandler.SendOTP)
	auth.Post("/verify", authHandler.VerifyOTP)

	vehicles := storefront.Group("/vehicles")
	vehicles.Get("/", vehicleHandler.ListMakes)
	vehicles.Get("/models/:modelId/variants", vehicleHandler.ListVariants)
	vehicles.Get("/models/:modelId/years", vehicleHandler.ListYears)
	vehicles.Get("/:makeId/models", vehicleHandler.ListModels)

	storefront.Post("/fitment/check", fitmentHandler.Check)
	storefront.Get("/fitment", fitmentHandler.Lookup)

	payments := storefront.Group("/payments")
	payments.Post("/razorpay/create", paymentHandler.CreateOrder)
	payments.Post("/razorpay/verify", paymentHandler.VerifyPayment)
	payments.Post("/cod-check", paymentHandler.CODCheck)

	// ========== ADMIN ROUTES ==========
	admin := app.Group("/admin")
	if os.Getenv("ADMIN_API_KEY") != "" {
		admin.Use(middleware.RequireAdminKey())
	} else {
		log.Println("⚠️  ADMIN_API_KEY not set - admin routes are unprotected")
	}

	admin.Get("/vehicles", adminHandler.ListMakes)
	admin.Post("/vehicles", adminHandler.CreateMake)
	admin.Post("/vehicles/:makeId/models", adminHandler.CreateModel)
	admin.Post("/vehicles/models/:modelId/variants", adminHandler.CreateVariant)

	admin.Get("/fitments", adminHandler.ListFitments)
	admin.Post("/fitments", adminHandler.CreateFitment)
	admin.Post("/fitments/bulk", adminHandler.BulkCreateFitments)
	admin.Post("/import", adminHandler.ImportCSV)
}
