// Package auth turns users into bearer tokens and back.  The handlers and
// middleware only see the Authenticator interface, so the token scheme
// can change without touching the registries.
package auth

import (
	"errors"
	"strings"

	"github.com/iliyamo/pcm-room-status/internal/model"
)

// ErrInvalidToken is returned when a token cannot be resolved.
var ErrInvalidToken = errors.New("invalid token")

// Authenticator issues a token for a user and resolves a token back to
// the email of the user it was issued for.  Resolve does not check that
// the user still exists; callers look the email up themselves.
type Authenticator interface {
	Issue(u model.User) (string, error)
	Resolve(token string) (string, error)
}

// TokenFromHeader extracts the token from an Authorization header value.
// A "Bearer " prefix is optional.
func TokenFromHeader(h string) string {
	h = strings.TrimSpace(h)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		h = strings.TrimSpace(h[7:])
	}
	return h
}

// EmailTokenAuthenticator uses the email itself as the token.  Tokens
// never expire and anyone who knows an email can present it.
type EmailTokenAuthenticator struct{}

func (EmailTokenAuthenticator) Issue(u model.User) (string, error) { return u.Email, nil }

func (EmailTokenAuthenticator) Resolve(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}
