package services

import (
	"testing"
	"time"

	"github.com/cartunez-in/cartunez-backend/internal/models"
)

func TestCustomerTokenRoundtrip(t *testing.T) {
	svc := &TokenService{secret: []byte("test-secret"), ttl: time.Hour}
	customer := &models.Customer{ID: "cus_abc", Phone: "9876543210"}

	token, err := svc.IssueCustomerToken(customer)
	if err != nil {
		t.Fatalf("IssueCustomerToken: %v", err)
	}

	sub, err := svc.ParseCustomerToken(token)
	if err != nil {
		t.Fatalf("ParseCustomerToken: %v", err)
	}
	if sub != "cus_abc" {
		t.Errorf("sub = %q, want cus_abc", sub)
	}
}

func TestParseCustomerToken_WrongSecret(t *testing.T) {
	issuer := &TokenService{secret: []byte("right"), ttl: time.Hour}
	verifier := &TokenService{secret: []byte("wrong"), ttl: time.Hour}

	token, err := issuer.IssueCustomerToken(&models.Customer{ID: "cus_abc", Phone: "9876543210"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.ParseCustomerToken(token); err == nil {
		t.Error("token signed with a different secret must not parse")
	}
}

func TestParseCustomerToken_Expired(t *testing.T) {
	svc := &TokenService{secret: []byte("test-secret"), ttl: -time.Hour}

	token, err := svc.IssueCustomerToken(&models.Customer{ID: "cus_abc", Phone: "9876543210"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ParseCustomerToken(token); err == nil {
		t.Error("expired token must not parse")
	}
}

func TestNewTokenServiceFromEnv_Unset(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if svc := NewTokenServiceFromEnv(); svc != nil {
		t.Error("no secret configured should disable token issuance")
	}
}
