package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/cartunez-in/cartunez-backend/internal/apperrors"
)

// SMSSender dispatches a text message to a 10-digit Indian phone number.
type SMSSender interface {
	Send(phone, message string) error
}

// NewSMSSenderFromEnv picks an SMS gateway from environment credentials:
// MSG91 if MSG91_AUTH_KEY is set, Twilio if TWILIO_ACCOUNT_SID is set,
// otherwise nil (callers treat a nil sender as a logged no-op).
func NewSMSSenderFromEnv() SMSSender {
	if os.Getenv("MSG91_AUTH_KEY") != "" {
		return NewMSG91Sender()
	}
	if os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		sender, err := NewTwilioSender()
		if err != nil {
			log.Printf("⚠️  Twilio credentials incomplete: %v", err)
			return nil
		}
		return sender
	}
	return nil
}

// MSG91Sender sends SMS through the MSG91 flow API.
type MSG91Sender struct {
	authKey    string
	senderID   string
	templateID string
	baseURL    string
	client     *http.Client
}

// NewMSG91Sender reads MSG91_AUTH_KEY, MSG91_SENDER_ID and MSG91_TEMPLATE_ID
// from the environment.
func NewMSG91Sender() *MSG91Sender {
	return &MSG91Sender{
		authKey:    os.Getenv("MSG91_AUTH_KEY"),
		senderID:   os.Getenv("MSG91_SENDER_ID"),
		templateID: os.Getenv("MSG91_TEMPLATE_ID"),
		baseURL:    "https://api.msg91.com/api/v5",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the message to the MSG91 flow endpoint. Phone numbers are
// prefixed with the Indian country code.
func (s *MSG91Sender) Send(phone, message string) error {
	payload := map[string]string{
		"template_id": s.templateID,
		"sender":      s.senderID,
		"short_url":   "0",
		"mobiles":     "91" + phone,
		"VAR1":        message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal SMS payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/flow/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("authkey", s.authKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return &apperrors.GatewayError{Description: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperrors.GatewayError{
			StatusCode:  resp.StatusCode,
			Description: fmt.Sprintf("SMS API error: %s", resp.Status),
			Retryable:   resp.StatusCode >= 500,
		}
	}
	return nil
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender creates a Twilio-backed sender from TWILIO_ACCOUNT_SID,
// TWILIO_AUTH_TOKEN and TWILIO_PHONE_NUMBER.
func NewTwilioSender() (*TwilioSender, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_PHONE_NUMBER")

	if accountSid == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &TwilioSender{client: client, from: from}, nil
}

// Send sends a plain SMS via Twilio.
func (t *TwilioSender) Send(phone, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo("+91" + phone)
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send SMS: %v", err)
		return &apperrors.GatewayError{Description: err.Error(), Retryable: true}
	}

	log.Printf("✅ SMS sent! SID: %s", *resp.Sid)
	return nil
}
