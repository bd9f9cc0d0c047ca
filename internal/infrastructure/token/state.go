package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"session-hub/internal/domain"

	"github.com/google/uuid"
)

// StateCodec signs OAuth state values with HMAC-SHA256 so the callback can
// verify that the embedded redirect target came from this service.
type StateCodec struct {
	secret []byte
}

// NewStateCodec creates a new state codec.
func NewStateCodec(secret string) *StateCodec {
	return &StateCodec{secret: []byte(secret)}
}

// Encode wraps a redirect target in a nonce-bearing, signed state value.
func (c *StateCodec) Encode(redirect string) (string, error) {
	if len(c.secret) == 0 {
		return "", domain.ErrSecretMissing
	}

	payload := uuid.NewString() + "|" + redirect
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))

	return base64.RawURLEncoding.EncodeToString([]byte(payload)) +
		"." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Decode verifies the state signature and returns the redirect target.
func (c *StateCodec) Decode(state string) (string, error) {
	encodedPayload, encodedMAC, found := strings.Cut(state, ".")
	if !found {
		return "", fmt.Errorf("%w: malformed state", domain.ErrTokenInvalid)
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return "", fmt.Errorf("%w: malformed state payload", domain.ErrTokenInvalid)
	}
	gotMAC, err := base64.RawURLEncoding.DecodeString(encodedMAC)
	if err != nil {
		return "", fmt.Errorf("%w: malformed state signature", domain.ErrTokenInvalid)
	}

	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	if !hmac.Equal(gotMAC, mac.Sum(nil)) {
		return "", fmt.Errorf("%w: state signature mismatch", domain.ErrTokenInvalid)
	}

	_, redirect, found := strings.Cut(string(payload), "|")
	if !found {
		return "", fmt.Errorf("%w: malformed state payload", domain.ErrTokenInvalid)
	}
	return redirect, nil
}
