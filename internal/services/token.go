package services

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cartunez-in/cartunez-backend/internal/models"
)

// TokenService issues signed session tokens for customers after OTP login.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenServiceFromEnv reads JWT_SECRET. Returns nil when no secret is
// configured; callers then skip token issuance.
func NewTokenServiceFromEnv() *TokenService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    30 * 24 * time.Hour,
	}
}

// IssueCustomerToken signs a session token carrying the customer id and
// phone.
func (t *TokenService) IssueCustomerToken(customer *models.Customer) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   customer.ID,
		"phone": customer.Phone,
		"iat":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseCustomerToken validates a session token and returns the customer id.
func (t *TokenService) ParseCustomerToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token missing subject")
	}
	return sub, nil
}
