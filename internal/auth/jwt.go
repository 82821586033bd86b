package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/pcm-room-status/internal/model"
)

// JWTAuthenticator issues HS256 tokens whose subject is the user email.
type JWTAuthenticator struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

// NewJWTAuthenticator builds an authenticator signing with secret.  A
// non-positive ttl defaults to one hour.
func NewJWTAuthenticator(secret string, ttl time.Duration) (*JWTAuthenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTAuthenticator{Secret: []byte(secret), TTL: ttl, now: time.Now}, nil
}

// Issue signs a token with sub=email, role, iat and exp claims.
func (a *JWTAuthenticator) Issue(u model.User) (string, error) {
	now := a.now().UTC()
	claims := jwt.MapClaims{
		"sub":  u.Email,
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(a.TTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Resolve verifies the signature and expiry and returns the subject.
func (a *JWTAuthenticator) Resolve(token string) (string, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.Secret, nil
	}, jwt.WithTimeFunc(a.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
