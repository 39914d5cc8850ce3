package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest(t *testing.T) {
	// sha256("secret")
	assert.Equal(t, "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b", Digest("secret"))
	assert.True(t, DigestMatches("secret", Digest("secret")))
	assert.False(t, DigestMatches("Secret", Digest("secret")))
	assert.False(t, DigestMatches("secret", ""))
}
