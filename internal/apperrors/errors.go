package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Handlers map these to HTTP status
// codes; services wrap them with context via fmt.Errorf and %w.
var (
	// Validation failures (400)
	ErrInvalidPhone   = errors.New("invalid phone number")
	ErrInvalidPincode = errors.New("invalid pincode format")
	ErrInvalidInput   = errors.New("invalid input")

	// Missing records (404)
	ErrNotFound    = errors.New("resource not found")
	ErrOtpNotFound = errors.New("no OTP request found")

	// Business rule violations (400 with reason)
	ErrOtpExpired           = errors.New("OTP expired")
	ErrOtpAttemptsExhausted = errors.New("too many attempts")
	ErrInvalidOtp           = errors.New("invalid OTP")

	// Gateway failures (502/503)
	ErrNotConfigured      = errors.New("service not configured")
	ErrGatewayUnavailable = errors.New("gateway unavailable")
)

// GatewayError carries a payment/SMS provider failure back to the caller.
// Retryable marks transient network/timeout failures; auth and signature
// failures are never retryable.
type GatewayError struct {
	StatusCode  int
	Description string
	Retryable   bool
}

func (e *GatewayError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("gateway error: %s", e.Description)
	}
	return fmt.Sprintf("gateway error: status %d", e.StatusCode)
}

func (e *GatewayError) Unwrap() error {
	if e.Retryable {
		return ErrGatewayUnavailable
	}
	return nil
}

// Wrap adds context to an error, preserving the sentinel for errors.Is.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
