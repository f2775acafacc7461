package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumericOTP generates a secure random numeric code of the given
// length. Leading zeros are allowed.
func GenerateNumericOTP(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}

// GenerateMeetingLink builds an online-session meeting link under the given
// base with a random 8-digit room code.
func GenerateMeetingLink(base string) (string, error) {
	room, err := GenerateNumericOTP(8)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", base, room), nil
}
