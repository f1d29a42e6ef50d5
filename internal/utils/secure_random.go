package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// verificationTokenBytes yields a 64-character hex token.
const verificationTokenBytes = 32

// GenerateSecureRandomString returns lengthInBytes random bytes, hex encoded.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewVerificationToken returns a token for business email verification links.
func NewVerificationToken() (string, error) {
	return GenerateSecureRandomString(verificationTokenBytes)
}
