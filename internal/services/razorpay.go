package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cartunez-in/cartunez-backend/internal/apperrors"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayService wraps Razorpay's basic-auth REST API for order creation,
// payment lookup, refunds and signature verification.
type RazorpayService struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

// NewRazorpayService reads RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET from the
// environment. Use IsConfigured before calling the remote operations.
func NewRazorpayService() *RazorpayService {
	return &RazorpayService{
		keyID:     os.Getenv("RAZORPAY_KEY_ID"),
		keySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		baseURL:   razorpayBaseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// IsConfigured reports whether both gateway credentials are present.
func (r *RazorpayService) IsConfigured() bool {
	return r.keyID != "" && r.keySecret != ""
}

// PublicKey returns the key id for the storefront checkout widget.
func (r *RazorpayService) PublicKey() string {
	return r.keyID
}

// Order is a Razorpay payment order.
type Order struct {
	ID         string `json:"id"`
	Entity     string `json:"entity"`
	Amount     int64  `json:"amount"` // in paisa
	AmountPaid int64  `json:"amount_paid"`
	AmountDue  int64  `json:"amount_due"`
	Currency   string `json:"currency"`
	Receipt    string `json:"receipt"`
	Status     string `json:"status"`
}

// Payment is a Razorpay payment record.
type Payment struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // in paisa
	Currency string `json:"currency"`
	Status   string `json:"status"`
	OrderID  string `json:"order_id"`
	Method   string `json:"method"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
}

// Refund is a Razorpay refund record.
type Refund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

// CreateOrderInput describes a new payment order. Amount must already be in
// the currency's smallest unit (paisa for INR).
type CreateOrderInput struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency,omitempty"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateOrder creates a payment order with the gateway.
func (r *RazorpayService) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if !r.IsConfigured() {
		return nil, apperrors.Wrap(apperrors.ErrNotConfigured,
			"set RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET")
	}

	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}
	notes := input.Notes
	if notes == nil {
		notes = map[string]string{}
	}

	payload := map[string]interface{}{
		"amount":   input.Amount,
		"currency": currency,
		"receipt":  input.Receipt,
		"notes":    notes,
	}

	var order Order
	if err := r.do(ctx, http.MethodPost, "/orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyPaymentSignature recomputes the HMAC-SHA256 of "orderID|paymentID"
// with the key secret and compares it to the gateway-supplied signature in
// constant time. A false return means untrusted input, not a system error.
func (r *RazorpayService) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	if !r.IsConfigured() {
		return false
	}

	mac := hmac.New(sha256.New, []byte(r.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// FetchPayment retrieves a payment record from the gateway.
func (r *RazorpayService) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if !r.IsConfigured() {
		return nil, apperrors.Wrap(apperrors.ErrNotConfigured,
			"set RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET")
	}

	var payment Payment
	if err := r.do(ctx, http.MethodGet, "/payments/"+paymentID, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// CreateRefund initiates a refund for a payment. A zero amount refunds the
// full payment; otherwise amount is in paisa.
func (r *RazorpayService) CreateRefund(ctx context.Context, paymentID string, amount int64) (*Refund, error) {
	if !r.IsConfigured() {
		return nil, apperrors.Wrap(apperrors.ErrNotConfigured,
			"set RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET")
	}

	payload := map[string]interface{}{}
	if amount > 0 {
		payload["amount"] = amount
	}

	var refund Refund
	if err := r.do(ctx, http.MethodPost, "/payments/"+paymentID+"/refund", payload, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

// razorpayError is the gateway's error envelope.
type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// do performs an authenticated request. Network failures and timeouts come
// back as retryable gateway errors; non-2xx responses carry the gateway's
// error description.
func (r *RazorpayService) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(r.keyID, r.keySecret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &apperrors.GatewayError{Description: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.GatewayError{Description: err.Error(), Retryable: true}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		gwErr := &apperrors.GatewayError{
			StatusCode: resp.StatusCode,
			Retryable:  resp.StatusCode >= 500,
		}
		var rzpErr razorpayError
		if json.Unmarshal(data, &rzpErr) == nil && rzpErr.Error.Description != "" {
			gwErr.Description = rzpErr.Error.Description
		} else {
			gwErr.Description = resp.Status
		}
		return gwErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode gateway response: %w", err)
		}
	}
	return nil
}
