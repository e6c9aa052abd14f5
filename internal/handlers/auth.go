package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/cartunez-in/cartunez-backend/internal/models"
	"github.com/cartunez-in/cartunez-backend/internal/services"
	"github.com/cartunez-in/cartunez-backend/internal/storage"
)

// AuthHandler handles phone OTP login requests
type AuthHandler struct {
	otp    *services.OTPService
	tokens *services.TokenService
	store  storage.Store
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(otp *services.OTPService, tokens *services.TokenService, store storage.Store) *AuthHandler {
	return &AuthHandler{
		otp:    otp,
		tokens: tokens,
		store:  store,
	}
}

// SendOTP handles POST /store/auth/otp/send
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if body.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Phone number is required",
		})
	}

	result, err := h.otp.SendOTP(body.Phone)
	if err != nil {
		return respondError(c, err)
	}

	response := fiber.Map{
		"success": true,
		"message": result.Message,
	}
	if result.OTP != "" {
		// Dev-only convenience, never set in production builds.
		response["otp"] = result.OTP
	}
	return c.JSON(response)
}

// VerifyOTP handles POST /store/auth/otp/verify. On success the customer is
// looked up (or created) by phone and a session token is issued.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var body struct {
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if body.Phone == "" || body.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Phone and OTP are required",
		})
	}

	result, err := h.otp.VerifyOTP(body.Phone, body.OTP)
	if err != nil {
		return respondError(c, err)
	}

	customer, err := h.store.GetCustomerByPhone(result.Phone)
	if err != nil {
		customer, err = h.store.CreateCustomer(&models.Customer{
			Phone:      result.Phone,
			HasAccount: true,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create customer account",
			})
		}
	}

	response := fiber.Map{
		"success":  true,
		"message":  "Login successful",
		"customer": customer,
	}

	if h.tokens != nil {
		token, err := h.tokens.IssueCustomerToken(customer)
		if err != nil {
			log.Printf("Failed to issue session token for %s: %v", customer.ID, err)
		} else {
			response["token"] = token
		}
	}

	return c.JSON(response)
}
