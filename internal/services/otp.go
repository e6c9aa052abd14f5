package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cartunez-in/cartunez-backend/internal/apperrors"
	"github.com/cartunez-in/cartunez-backend/internal/models"
	"github.com/cartunez-in/cartunez-backend/internal/storage"
	"github.com/cartunez-in/cartunez-backend/internal/utils"
)

// OTP configuration
const (
	OTPExpiryMinutes = 5
	OTPMaxAttempts   = 3
)

// OTPService generates, stores and validates one-time codes for phone
// verification.
type OTPService struct {
	store   storage.Store
	sms     SMSSender
	now     func() time.Time
	devMode bool
}

// NewOTPService creates a new OTP service. A nil sender disables SMS
// dispatch; codes are still stored and considered "sent".
func NewOTPService(store storage.Store, sms SMSSender) *OTPService {
	return &OTPService{
		store:   store,
		sms:     sms,
		now:     time.Now,
		devMode: os.Getenv("APP_ENV") != "production",
	}
}

// SendOTPResult is the outcome of a send request.
type SendOTPResult struct {
	Message string `json:"message"`
	// OTP is only populated outside production, for test convenience.
	OTP string `json:"otp,omitempty"`
}

// VerifyOTPResult is the outcome of a successful verification.
type VerifyOTPResult struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendOTP validates the phone number, replaces any outstanding unverified
// request for it, stores a fresh 6-digit code and dispatches it over SMS.
func (s *OTPService) SendOTP(phone string) (*SendOTPResult, error) {
	cleanPhone := utils.NormalizePhone(phone)
	if len(cleanPhone) != 10 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidPhone, "please enter 10 digits")
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	req := &models.OtpRequest{
		Phone:     cleanPhone,
		OTP:       code,
		Attempts:  0,
		ExpiresAt: s.now().Add(OTPExpiryMinutes * time.Minute),
	}

	// Delete-old + insert-new happens atomically inside the store, keeping
	// at most one active request per phone.
	if _, err := s.store.ReplaceOtpRequest(req); err != nil {
		return nil, fmt.Errorf("failed to store OTP request: %w", err)
	}

	if s.sms != nil {
		if err := s.sms.Send(cleanPhone, fmt.Sprintf("Your CarTunez OTP is: %s", code)); err != nil {
			// SMS failure is soft: the code is stored and the request counts
			// as sent, matching the unconfigured-gateway behavior.
			log.Printf("⚠️  Failed to send OTP SMS to %s: %v", utils.MaskPhone(cleanPhone), err)
		}
	} else {
		log.Printf("⚠️  SMS gateway not configured. OTP for %s not sent.", utils.MaskPhone(cleanPhone))
	}

	result := &SendOTPResult{
		Message: fmt.Sprintf("OTP sent to %s", utils.MaskPhone(cleanPhone)),
	}
	if s.devMode {
		result.OTP = code
	}
	return result, nil
}

// VerifyOTP checks a submitted code against the active request for the
// phone. Expired and attempts-exhausted requests are purged so the caller
// must request a new code.
func (s *OTPService) VerifyOTP(phone, code string) (*VerifyOTPResult, error) {
	cleanPhone := utils.NormalizePhone(phone)

	req, err := s.store.GetActiveOtpRequest(cleanPhone)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrOtpNotFound, "please request a new OTP")
	}

	if s.now().After(req.ExpiresAt) {
		_ = s.store.DeleteOtpRequest(req.ID)
		return nil, apperrors.Wrap(apperrors.ErrOtpExpired, "please request a new one")
	}

	if req.Attempts >= OTPMaxAttempts {
		_ = s.store.DeleteOtpRequest(req.ID)
		return nil, apperrors.Wrap(apperrors.ErrOtpAttemptsExhausted, "please request a new OTP")
	}

	if req.OTP != code {
		req.Attempts++
		if req.Attempts >= OTPMaxAttempts {
			_ = s.store.DeleteOtpRequest(req.ID)
			return nil, apperrors.Wrap(apperrors.ErrOtpAttemptsExhausted, "please request a new OTP")
		}
		remaining := OTPMaxAttempts - req.Attempts
		if err := s.store.UpdateOtpRequest(req); err != nil {
			return nil, fmt.Errorf("failed to record attempt: %w", err)
		}
		return nil, fmt.Errorf("%d attempts remaining: %w", remaining, apperrors.ErrInvalidOtp)
	}

	req.IsVerified = true
	if err := s.store.UpdateOtpRequest(req); err != nil {
		return nil, fmt.Errorf("failed to mark OTP verified: %w", err)
	}

	return &VerifyOTPResult{
		Phone:   cleanPhone,
		Message: "Phone verified successfully",
	}, nil
}
