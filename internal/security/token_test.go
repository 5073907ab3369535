package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() *Tokens {
	return NewTokens(TokenConfig{Secret: "s3cret", Issuer: "gstore", Audience: "storefront", TTL: time.Minute})
}

func TestTokens_RoundTrip(t *testing.T) {
	tk := testTokens()

	raw, err := tk.Issue(1, "usuario@ejemplo.com", "Usuario Ejemplo")
	require.NoError(t, err)

	claims, err := tk.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "usuario@ejemplo.com", claims.Email)
	assert.Equal(t, "Usuario Ejemplo", claims.Name)
}

func TestTokens_Rejects(t *testing.T) {
	tk := testTokens()
	raw, err := tk.Issue(1, "a@b.c", "A")
	require.NoError(t, err)

	other := NewTokens(TokenConfig{Secret: "other", Issuer: "gstore", Audience: "storefront"})
	_, err = other.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongAud := NewTokens(TokenConfig{Secret: "s3cret", Issuer: "gstore", Audience: "admin"})
	_, err = wrongAud.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	late := testTokens()
	late.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = late.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tk.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate(t *testing.T) {
	a, ok := Authenticate("usuario@ejemplo.com", "123456")
	require.True(t, ok)
	assert.EqualValues(t, 1, a.ID)

	_, ok = Authenticate("usuario@ejemplo.com", "wrong")
	assert.False(t, ok)
	_, ok = Authenticate("nobody@ejemplo.com", "123456")
	assert.False(t, ok)
}
