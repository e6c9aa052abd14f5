package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/cartunez-in/cartunez-backend/internal/services"
	"github.com/cartunez-in/cartunez-backend/internal/storage"
)

func newAuthTestApp(t *testing.T) (*fiber.App, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	otp := services.NewOTPService(store, nil)
	handler := NewAuthHandler(otp, nil, store)

	app := fiber.New()
	app.Post("/store/auth/otp/send", handler.SendOTP)
	app.Post("/store/auth/otp/verify", handler.VerifyOTP)
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, out
}

func TestSendOTP_MissingPhone(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp, out := postJSON(t, app, "/store/auth/otp/send", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if out["error"] == nil {
		t.Errorf("response = %v, want error message", out)
	}
}

func TestSendOTP_InvalidPhone(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp, _ := postJSON(t, app, "/store/auth/otp/send", map[string]string{"phone": "12345"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestOTPLoginFlow(t *testing.T) {
	app, store := newAuthTestApp(t)

	resp, out := postJSON(t, app, "/store/auth/otp/send", map[string]string{"phone": "9876543210"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send status = %d, body %v", resp.StatusCode, out)
	}
	code, _ := out["otp"].(string)
	if code == "" {
		t.Fatal("dev mode response should echo the code")
	}

	resp, out = postJSON(t, app, "/store/auth/otp/verify", map[string]string{
		"phone": "9876543210",
		"otp":   code,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status = %d, body %v", resp.StatusCode, out)
	}
	if out["success"] != true {
		t.Errorf("response = %v", out)
	}

	customer, ok := out["customer"].(map[string]interface{})
	if !ok {
		t.Fatalf("customer missing: %v", out)
	}
	if customer["phone"] != "9876543210" {
		t.Errorf("customer phone = %v", customer["phone"])
	}

	// The account persists, so a second login reuses it.
	stored, err := store.GetCustomerByPhone("9876543210")
	if err != nil {
		t.Fatalf("customer not persisted: %v", err)
	}
	if stored.ID != customer["id"] {
		t.Errorf("stored ID = %q, response ID = %v", stored.ID, customer["id"])
	}
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp, out := postJSON(t, app, "/store/auth/otp/send", map[string]string{"phone": "9876543210"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send status = %d", resp.StatusCode)
	}
	code, _ := out["otp"].(string)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	resp, out = postJSON(t, app, "/store/auth/otp/verify", map[string]string{
		"phone": "9876543210",
		"otp":   wrong,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("verify status = %d, body %v", resp.StatusCode, out)
	}
}

func TestVerifyOTP_NoRequest(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp, _ := postJSON(t, app, "/store/auth/otp/verify", map[string]string{
		"phone": "9876543210",
		"otp":   "123456",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("verify status = %d, want 404", resp.StatusCode)
	}
}
