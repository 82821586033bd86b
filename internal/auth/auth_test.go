package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/pcm-room-status/internal/model"
)

func TestTokenFromHeader(t *testing.T) {
	cases := map[string]string{
		"admin@goinn.com":         "admin@goinn.com",
		"  admin@goinn.com ":      "admin@goinn.com",
		"Bearer admin@goinn.com":  "admin@goinn.com",
		"bearer   abc.def.ghi":    "abc.def.ghi",
		"":                        "",
		"Bearer":                  "Bearer",
	}
	for in, want := range cases {
		assert.Equal(t, want, TokenFromHeader(in), "header %q", in)
	}
}

func TestEmailTokenAuthenticator(t *testing.T) {
	var a Authenticator = EmailTokenAuthenticator{}
	u := model.User{Email: "user@goinn.com", Role: model.RoleUser}

	tok, err := a.Issue(u)
	require.NoError(t, err)
	assert.Equal(t, "user@goinn.com", tok)

	email, err := a.Resolve(tok)
	require.NoError(t, err)
	assert.Equal(t, u.Email, email)

	_, err = a.Resolve("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	a, err := NewJWTAuthenticator("s3cret", time.Minute)
	require.NoError(t, err)

	tok, err := a.Issue(model.User{Email: "admin@goinn.com", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.NotEqual(t, "admin@goinn.com", tok)

	email, err := a.Resolve(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@goinn.com", email)
}

func TestJWTAuthenticator_Rejects(t *testing.T) {
	a, err := NewJWTAuthenticator("s3cret", time.Minute)
	require.NoError(t, err)
	tok, err := a.Issue(model.User{Email: "admin@goinn.com"})
	require.NoError(t, err)

	other, err := NewJWTAuthenticator("different", time.Minute)
	require.NoError(t, err)
	_, err = other.Resolve(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	a.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = a.Resolve(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	_, err = a.Resolve("admin@goinn.com")
	assert.ErrorIs(t, err, ErrInvalidToken, "not a jwt")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "admin@goinn.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = a.Resolve(none)
	assert.ErrorIs(t, err, ErrInvalidToken, "alg none")
}

func TestNewJWTAuthenticator_EmptySecret(t *testing.T) {
	_, err := NewJWTAuthenticator("", time.Minute)
	assert.Error(t, err)
}
