package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/cartunez-in/cartunez-backend/database"
	"github.com/cartunez-in/cartunez-backend/internal/jobs"
	"github.com/cartunez-in/cartunez-backend/internal/models"
	"github.com/cartunez-in/cartunez-backend/internal/routes"
	"github.com/cartunez-in/cartunez-backend/internal/services"
	"github.com/cartunez-in/cartunez-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - checking environment variables")
	}

	// Initialize storage
	var store storage.Store

	// Check if we should use memory store (for testing)
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.VehicleMake{},
			&models.VehicleModel{},
			&models.VehicleVariant{},
			&models.ProductFitment{},
			&models.OtpRequest{},
			&models.Customer{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
	}

	// Seed the vehicle catalog if empty
	if os.Getenv("SEED_VEHICLES") == "true" {
		if err := database.SeedVehicles(store); err != nil {
			log.Fatal("Failed to seed vehicle catalog:", err)
		}
	}

	// Initialize SMS gateway (MSG91 or Twilio, nil when unconfigured)
	smsSender := services.NewSMSSenderFromEnv()
	if smsSender == nil {
		log.Println("⚠️  SMS gateway not configured - OTP codes will not be delivered")
	} else {
		log.Println("✅ SMS gateway initialized")
	}

	// Initialize services
	otpService := services.NewOTPService(store, smsSender)
	fitmentService := services.NewFitmentService(store)
	codService := services.NewCODService(services.DefaultCODConfig())
	razorpayService := services.NewRazorpayService()
	if !razorpayService.IsConfigured() {
		log.Println("⚠️  Razorpay credentials not found - online payments disabled")
	}
	tokenService := services.NewTokenServiceFromEnv()
	if tokenService == nil {
		log.Println("⚠️  JWT_SECRET not set - session tokens disabled")
	}

	// Start the expired-OTP cleanup job
	cleanupJob := jobs.NewCleanupJob(store)
	cleanupJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "CarTunez Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Admin-Key",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Setup routes
	routes.SetupRoutes(app, store, otpService, fitmentService, codService,
		razorpayService, tokenService)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		cleanupJob.Stop()
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 CarTunez Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", storageType())
	log.Printf("📱 SMS gateway: %s", configuredStatus(smsSender != nil))
	log.Printf("💳 Razorpay: %s", configuredStatus(razorpayService.IsConfigured()))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func storageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func configuredStatus(configured bool) string {
	if configured {
		return "Configured"
	}
	return "Not configured"
}
