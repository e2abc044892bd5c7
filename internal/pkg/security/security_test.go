package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.NoError(t, CheckPasswordHash("secret123", hash))
	assert.ErrorIs(t, CheckPasswordHash("wrong-password", hash), ErrPasswordMismatch)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", "Inkstone", time.Hour)

	token, err := m.GenerateToken(42, "alice", RolesFor(true))
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.HasRole(RoleAdmin))

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
}

func TestJWTRejectsForeignSecretAndExpiry(t *testing.T) {
	issuer := NewJWTManager("secret-a", "Inkstone", time.Hour)
	token, err := issuer.GenerateToken(1, "bob", RolesFor(false))
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", "Inkstone", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	later := NewJWTManager("secret-a", "Inkstone", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExtractSignatureMalformed(t *testing.T) {
	_, err := ExtractSignature("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestRolesFor(t *testing.T) {
	assert.Equal(t, []string{RoleUser}, RolesFor(false))
	claims := &UserClaims{Roles: RolesFor(false)}
	assert.False(t, claims.HasRole(RoleAdmin))
}
