package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// OTPLength is the number of digits in a generated one-time code.
const OTPLength = 6

// GenerateOTP generates a 6-digit numeric OTP. Each digit is drawn
// independently from crypto/rand so leading zeros are possible.
func GenerateOTP() (string, error) {
	var sb strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < OTPLength; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}

// NormalizePhone strips every non-digit rune from a phone number.
func NormalizePhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// MaskPhone hides the middle of a 10-digit phone number, keeping the first
// and last two digits visible (e.g. "98****21").
func MaskPhone(phone string) string {
	if len(phone) < 4 {
		return "****"
	}
	return phone[:2] + "****" + phone[len(phone)-2:]
}
