// Package token issues and verifies the signed session tokens carried
// by the auth cookie.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers bad signature, expiry and malformed claims.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload embedded in a session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 session tokens.
type Service struct {
	key []byte
	ttl time.Duration
}

// NewService returns a Service signing with secret, tokens valid for ttl.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{key: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue creates a signed token embedding the user id and email.
func (s *Service) Issue(userID uuid.UUID, email string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.ttl)
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature and expiry and returns the embedded identity.
// A decoded claim missing either the user id or the email is treated
// the same as a bad signature.
func (s *Service) Verify(raw string) (uuid.UUID, string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}
	if claims.Subject == "" || claims.Email == "" {
		return uuid.Nil, "", ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}
	return userID, claims.Email, nil
}
