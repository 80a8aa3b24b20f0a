package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/platformsec/identity-service/internal/core/domain"
)

// Claims is the payload carried by every issued token: the subject identity
// id plus a snapshot of username and roles at issuance time.
type Claims struct {
	jwt.RegisteredClaims
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// TokenService signs and verifies bearer tokens with a process-wide secret
// loaded once at startup. It is the only component that touches the key.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &TokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Issue mints an HS256-signed token for the given identity. Expiry is
// issuance time plus the configured lifetime.
func (s *TokenService) Issue(id, username string, roles []string) (string, error) {
	now := s.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
		Username: username,
		Roles:    roles,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify decodes a token and validates its signature and expiry. Any failure
// collapses into domain.ErrUnauthenticated; the caller learns nothing about
// why the token was rejected.
func (s *TokenService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}
