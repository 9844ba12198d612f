package generator

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// SessionSecretSize is the number of random bytes in a generated session secret.
const SessionSecretSize = 32

var ErrSecretTooShort = errors.New("secret must have at least 16 bytes")

// NewSecret returns size random bytes encoded as URL-safe base64.
func NewSecret(size int) (string, error) {
	if size < 16 {
		return "", ErrSecretTooShort
	}

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
