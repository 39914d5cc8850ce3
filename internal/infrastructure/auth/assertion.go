package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// AssertionSigner signs license assertions with HMAC-SHA256.
// Signature: hex(HMAC-SHA256(secret, payload)), where payload is the exact
// JSON byte form handed to the agent.
type AssertionSigner struct {
	secret []byte
}

func NewAssertionSigner(secret string) *AssertionSigner {
	return &AssertionSigner{secret: []byte(secret)}
}

// Sign returns the hex signature of payload.
func (s *AssertionSigner) Sign(payload []byte) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether sig is the signature of payload. Holders of the
// shared secret call this on the bytes they received, never on a
// re-serialized copy.
func (s *AssertionSigner) Verify(payload []byte, sig string) bool {
	want, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	h := hmac.New(sha256.New, s.secret)
	h.Write(payload)
	return hmac.Equal(h.Sum(nil), want)
}

// SignValue serializes v once and signs those bytes.
func (s *AssertionSigner) SignValue(v any) (json.RawMessage, string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize assertion: %w", err)
	}
	return payload, s.Sign(payload), nil
}
