package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func mintHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestHS256Verifier_ValidToken(t *testing.T) {
	v, err := NewHS256Verifier(testSecret)
	require.NoError(t, err)

	token := mintHS256(t, testSecret, jwt.MapClaims{
		"sub":   "sub-1",
		"iss":   "clubhouse-dev",
		"email": "alice@example.com",
		"name":  "Alice",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	ident, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", ident.Subject)
	assert.Equal(t, "clubhouse-dev", ident.Issuer)
	assert.Equal(t, "alice@example.com", ident.Email)
	assert.Equal(t, "Alice", ident.Name)
}

func TestHS256Verifier_MissingProfileClaims(t *testing.T) {
	v, err := NewHS256Verifier(testSecret)
	require.NoError(t, err)

	token := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "sub-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	ident, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Empty(t, ident.Email)
	assert.Empty(t, ident.Name)
}

func TestHS256Verifier_WrongSecret(t *testing.T) {
	v, err := NewHS256Verifier(testSecret)
	require.NoError(t, err)

	token := mintHS256(t, "other-secret", jwt.MapClaims{
		"sub": "sub-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = v.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestHS256Verifier_ExpiredToken(t *testing.T) {
	v, err := NewHS256Verifier(testSecret)
	require.NoError(t, err)

	token := mintHS256(t, testSecret, jwt.MapClaims{
		"sub": "sub-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err = v.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestHS256Verifier_RejectsNone(t *testing.T) {
	v, err := NewHS256Verifier(testSecret)
	require.NoError(t, err)

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "sub-1"})
	unsigned, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), unsigned)
	assert.Error(t, err)
}

func TestNewHS256Verifier_EmptySecret(t *testing.T) {
	_, err := NewHS256Verifier("")
	assert.Error(t, err)
}
