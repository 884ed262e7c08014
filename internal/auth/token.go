// Package auth issues and verifies the bearer tokens carried in the
// Authorization header.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of issued tokens.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned when a token is missing, malformed, expired or
// fails signature verification.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity carried by a bearer token.
type Claims struct {
	UserID string
	Phone  string
}

type tokenClaims struct {
	Phone string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 JWTs with a shared secret.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for the given user, valid for TokenTTL.
func (t *TokenIssuer) Issue(userID, phone string) (string, error) {
	now := t.now()
	claims := tokenClaims{
		Phone: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses and validates a token, returning the identity it carries.
func (t *TokenIssuer) Verify(token string) (*Claims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: claims.Subject, Phone: claims.Phone}, nil
}
