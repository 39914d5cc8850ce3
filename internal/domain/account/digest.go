package account

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Digest is the unsalted sha256 hex digest used for customer passwords,
// panel admin passwords and panel admin tokens. Existing rows depend on
// this exact form.
func Digest(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// DigestMatches compares plain against a stored digest in constant time.
func DigestMatches(plain, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(Digest(plain)), []byte(digest)) == 1
}
