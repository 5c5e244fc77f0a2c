package usecase

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// orderIDBytes yields 360 bits of entropy, enough to make identifiers
// unguessable and collisions negligible.
const orderIDBytes = 45

// NewOrderID generates an opaque URL-safe order identifier.
func NewOrderID() (string, error) {
	buf := make([]byte, orderIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate order id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
