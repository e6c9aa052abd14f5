package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"github.com/cartunez-in/cartunez-backend/internal/services"
)

// PaymentHandler serves the Razorpay checkout and COD endpoints
type PaymentHandler struct {
	razorpay *services.RazorpayService
	cod      *services.CODService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(razorpay *services.RazorpayService, cod *services.CODService) *PaymentHandler {
	return &PaymentHandler{
		razorpay: razorpay,
		cod:      cod,
	}
}

// CreateOrder handles POST /store/payments/razorpay/create. The request
// amount is in INR and converted to paisa for the gateway.
func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	var body struct {
		Amount  float64 `json:"amount"`
		OrderID string  `json:"orderId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if body.Amount <= 0 || body.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "amount and orderId are required",
		})
	}

	if !h.razorpay.IsConfigured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":      "Payment service not configured",
			"configured": false,
		})
	}

	order, err := h.razorpay.CreateOrder(c.Context(), services.CreateOrderInput{
		Amount:  int64(math.Round(body.Amount * 100)),
		Receipt: body.OrderID,
		Notes:   map[string]string{"order_id": body.OrderID},
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"order": fiber.Map{
			"id":       order.ID,
			"amount":   order.Amount,
			"currency": order.Currency,
			"receipt":  order.Receipt,
		},
		"key": h.razorpay.PublicKey(),
	})
}

// VerifyPayment handles POST /store/payments/razorpay/verify
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var body struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if body.OrderID == "" || body.PaymentID == "" || body.Signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "razorpay_order_id, razorpay_payment_id, and razorpay_signature are required",
		})
	}

	if !h.razorpay.VerifyPaymentSignature(body.OrderID, body.PaymentID, body.Signature) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Payment verification failed. Invalid signature.",
		})
	}

	payment, err := h.razorpay.FetchPayment(c.Context(), body.PaymentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment verified successfully",
		"payment": fiber.Map{
			"id":       payment.ID,
			"amount":   float64(payment.Amount) / 100, // paisa back to INR
			"currency": payment.Currency,
			"status":   payment.Status,
			"method":   payment.Method,
			"email":    payment.Email,
			"contact":  payment.Contact,
		},
	})
}

// CODCheck handles POST /store/payments/cod-check
func (h *PaymentHandler) CODCheck(c *fiber.Ctx) error {
	var body struct {
		Pincode     string   `json:"pincode"`
		OrderAmount *float64 `json:"orderAmount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if body.Pincode == "" || body.OrderAmount == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "pincode and orderAmount are required",
		})
	}

	eligibility := h.cod.CheckEligibility(services.CODCheckInput{
		Pincode:     body.Pincode,
		OrderAmount: *body.OrderAmount,
	})
	delivery := h.cod.EstimatedDelivery(body.Pincode)

	return c.JSON(fiber.Map{
		"cod": fiber.Map{
			"eligible":  eligibility.Eligible,
			"reason":    eligibility.Reason,
			"fee":       eligibility.CODFee,
			"maxAmount": eligibility.MaxCODAmount,
		},
		"delivery": fiber.Map{
			"days":     delivery.Days,
			"estimate": delivery.Message,
			"tier":     h.cod.ServiceTier(body.Pincode),
		},
	})
}
