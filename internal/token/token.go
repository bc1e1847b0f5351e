// Package token issues and validates the signed session tokens that carry
// all authentication state. The PIN-verified bit is a signed claim, so the
// second-factor distinction is server-verifiable and never trusted from
// client-reported flags.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "posadmin/pkg/domain-errors"
)

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	AdminID     string `json:"admin_id"`
	Username    string `json:"username"`
	PINVerified bool   `json:"pin_verified"`
	jwt.RegisteredClaims
}

// Service signs and validates session tokens with a single HMAC key.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

func NewService(signingKey string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     "posadmin",
		ttl:        ttl,
	}
}

// TTL reports the configured session lifetime, used for cookie Max-Age.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a session token. pinVerified false marks a session that has
// passed the password check but not yet the second factor.
func (s *Service) Issue(adminID uuid.UUID, username string, pinVerified bool) (string, error) {
	now := time.Now()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		AdminID:     adminID.String(),
		Username:    username,
		PINVerified: pinVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// Validate parses and verifies a session token.
func (s *Service) Validate(tokenString string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return claims, nil
}
