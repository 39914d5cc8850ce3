package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12

	// licenseGroupBytes gives each key group 32 bits of entropy.
	licenseGroupBytes = 4

	// BanPrefix prefixes generated ban IDs.
	BanPrefix = "BAN"
)

// Generate creates a random Base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// NewLicenseKey returns "<prefix>-XXXXXXXX-XXXXXXXX" where each group is
// four random bytes rendered as uppercase hex.
func NewLicenseKey(prefix string) (string, error) {
	groups := make([]string, 2)
	for i := range groups {
		buf := make([]byte, licenseGroupBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		groups[i] = strings.ToUpper(hex.EncodeToString(buf))
	}
	return fmt.Sprintf("%s-%s-%s", prefix, groups[0], groups[1]), nil
}

// NewCommandID returns a timestamp-ordered ID with a random suffix,
// e.g. "1718000000000-x9Kq2".
func NewCommandID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), MustGenerate(5))
}

// NewBanID returns "BAN-<unix millis>".
func NewBanID(now time.Time) string {
	return fmt.Sprintf("%s-%d", BanPrefix, now.UnixMilli())
}

// NewUUID returns a random UUID string.
func NewUUID() string {
	return uuid.NewString()
}

// NewSecretToken returns a 32-byte random token, hex encoded.
func NewSecretToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
