package auth

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAssertionSigner(t *testing.T) {
	signer := NewAssertionSigner("shared-secret")

	payload, sig, err := signer.SignValue(map[string]any{"license_key": "WARD-1", "status": "ACTIVE"})
	require.NoError(t, err)
	assert.Len(t, sig, 64)
	assert.True(t, signer.Verify(payload, sig))

	tampered := bytes.Replace(payload, []byte("ACTIVE"), []byte("ACTIVF"), 1)
	assert.False(t, signer.Verify(tampered, sig))
	assert.False(t, NewAssertionSigner("other").Verify(payload, sig))
	assert.False(t, signer.Verify(payload, "not-hex"))
}

func TestJWTService(t *testing.T) {
	svc := NewJWTService("jwt-secret", 15)

	token, expiresIn, err := svc.Generate(OperatorSubject, "operator")
	require.NoError(t, err)
	assert.Equal(t, int64(900), expiresIn)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, OperatorSubject, claims.Subject)
	assert.Equal(t, "operator", claims.Role)

	_, err = NewJWTService("wrong", 15).Verify(token)
	assert.Error(t, err)

	_, err = svc.Verify("garbage")
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("hunter2")
	require.NoError(t, err)
	assert.NoError(t, h.Verify("hunter2", hash))
	assert.Error(t, h.Verify("hunter3", hash))
	assert.Error(t, h.Verify("hunter2", ""))
}
