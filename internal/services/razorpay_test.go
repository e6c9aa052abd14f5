package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cartunez-in/cartunez-backend/internal/apperrors"
)

func newTestRazorpay(baseURL string) *RazorpayService {
	return &RazorpayService{
		keyID:     "rzp_test_key",
		keySecret: "test_secret",
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 2 * time.Second},
	}
}

func signPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	svc := newTestRazorpay("")

	sig := signPayment("test_secret", "order123", "pay456")
	if !svc.VerifyPaymentSignature("order123", "pay456", sig) {
		t.Fatal("expected valid signature to verify")
	}

	// Any single-byte mutation must fail.
	mutated := []byte(sig)
	if mutated[0] == 'a' {
		mutated[0] = 'b'
	} else {
		mutated[0] = 'a'
	}
	if svc.VerifyPaymentSignature("order123", "pay456", string(mutated)) {
		t.Error("expected mutated signature to fail")
	}

	if svc.VerifyPaymentSignature("order999", "pay456", sig) {
		t.Error("expected signature for different order to fail")
	}
}

func TestVerifyPaymentSignature_NotConfigured(t *testing.T) {
	svc := &RazorpayService{}
	if svc.VerifyPaymentSignature("order123", "pay456", "anything") {
		t.Error("unconfigured service must never verify")
	}
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "test_secret" {
			t.Error("missing or wrong basic auth")
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if body["amount"].(float64) != 129900 {
			t.Errorf("amount = %v, want 129900", body["amount"])
		}
		if body["currency"].(string) != "INR" {
			t.Errorf("currency = %v", body["currency"])
		}

		json.NewEncoder(w).Encode(Order{
			ID:       "order_abc",
			Entity:   "order",
			Amount:   129900,
			Currency: "INR",
			Receipt:  "receipt_1",
			Status:   "created",
		})
	}))
	defer srv.Close()

	svc := newTestRazorpay(srv.URL)
	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Amount:  129900,
		Receipt: "receipt_1",
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}
	if order.ID != "order_abc" || order.Amount != 129900 {
		t.Errorf("order = %+v", order)
	}
}

func TestCreateOrder_NotConfigured(t *testing.T) {
	svc := &RazorpayService{client: http.DefaultClient}
	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 100, Receipt: "r"})
	if !errors.Is(err, apperrors.ErrNotConfigured) {
		t.Fatalf("CreateOrder = %v, want ErrNotConfigured", err)
	}
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"code":        "BAD_REQUEST_ERROR",
				"description": "amount must be at least INR 1.00",
			},
		})
	}))
	defer srv.Close()

	svc := newTestRazorpay(srv.URL)
	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 1, Receipt: "r"})

	var gwErr *apperrors.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("CreateOrder = %v, want GatewayError", err)
	}
	if gwErr.Description != "amount must be at least INR 1.00" {
		t.Errorf("Description = %q", gwErr.Description)
	}
	if gwErr.Retryable {
		t.Error("4xx must not be retryable")
	}
}

func TestCreateOrder_ServerErrorRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := newTestRazorpay(srv.URL)
	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 100, Receipt: "r"})
	if !errors.Is(err, apperrors.ErrGatewayUnavailable) {
		t.Fatalf("CreateOrder = %v, want retryable ErrGatewayUnavailable", err)
	}
}

func TestCreateOrder_NetworkFailureRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	svc := newTestRazorpay(srv.URL)
	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{Amount: 100, Receipt: "r"})
	if !errors.Is(err, apperrors.ErrGatewayUnavailable) {
		t.Fatalf("CreateOrder = %v, want retryable ErrGatewayUnavailable", err)
	}
}

func TestFetchPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments/pay_123" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Payment{
			ID:     "pay_123",
			Amount: 50000,
			Status: "captured",
			Method: "upi",
		})
	}))
	defer srv.Close()

	svc := newTestRazorpay(srv.URL)
	payment, err := svc.FetchPayment(context.Background(), "pay_123")
	if err != nil {
		t.Fatalf("FetchPayment error: %v", err)
	}
	if payment.ID != "pay_123" || payment.Status != "captured" {
		t.Errorf("payment = %+v", payment)
	}
}

func TestCreateRefund(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments/pay_123/refund" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotBody = nil
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Refund{ID: "rfnd_1", PaymentID: "pay_123", Amount: 5000, Status: "processed"})
	}))
	defer srv.Close()

	svc := newTestRazorpay(srv.URL)
	refund, err := svc.CreateRefund(context.Background(), "pay_123", 5000)
	if err != nil {
		t.Fatalf("CreateRefund error: %v", err)
	}
	if refund.ID != "rfnd_1" {
		t.Errorf("refund = %+v", refund)
	}
	if gotBody["amount"].(float64) != 5000 {
		t.Errorf("refund amount sent = %v", gotBody["amount"])
	}

	// Full refund omits the amount field.
	if _, err := svc.CreateRefund(context.Background(), "pay_123", 0); err != nil {
		t.Fatalf("full CreateRefund error: %v", err)
	}
	if _, present := gotBody["amount"]; present {
		t.Error("full refund must not send an amount")
	}
}
