package random

import (
	"crypto/rand"
	"encoding/base64"
)

// Random provides request-id generation that can be mocked for testing
type Random interface {
	// RequestID returns an opaque id attached to outbound remote calls
	// so a failure can be correlated with the identity service's logs
	RequestID() string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// RequestID returns a random url-safe id
func (r *CryptoRandom) RequestID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
