package service

import (
	"crypto/rand"
	"encoding/hex"
)

// NewOpaqueToken returns a 32-character random hex token, used both for
// session tokens and table QR tokens.
func NewOpaqueToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
