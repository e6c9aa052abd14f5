package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cartunez-in/cartunez-backend/internal/apperrors"
)

// statusForError maps the service error taxonomy to HTTP status codes:
// validation and business-rule failures are 400, missing records 404,
// misconfiguration 503, transient gateway failures 502.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidPhone),
		errors.Is(err, apperrors.ErrInvalidPincode),
		errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrOtpExpired),
		errors.Is(err, apperrors.ErrOtpAttemptsExhausted),
		errors.Is(err, apperrors.ErrInvalidOtp):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrOtpNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrNotConfigured):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrGatewayUnavailable):
		return fiber.StatusBadGateway
	default:
		var gwErr *apperrors.GatewayError
		if errors.As(err, &gwErr) {
			return fiber.StatusBadGateway
		}
		return fiber.StatusInternalServerError
	}
}

// respondError serializes a service failure with its mapped status.
func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
