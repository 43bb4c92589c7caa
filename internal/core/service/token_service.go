package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

// tokenClaims is the wire shape of an issued token. Authorities travel
// as a plain string slice under the "roles" claim.
type tokenClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// TokenService issues and validates HS256-signed bearer tokens. The key
// is derived once from the base64-encoded secret at construction and is
// immutable afterwards, so the service is safe for concurrent use.
type TokenService struct {
	key []byte
	ttl time.Duration
}

// NewTokenService decodes the base64 secret and fixes the token TTL.
// ttlMillis is millisecond-precision wall-clock; tokens expire with a
// strict cutover and no leeway.
func NewTokenService(encodedSecret string, ttlMillis int64) (*TokenService, error) {
	if encodedSecret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	key, err := base64.StdEncoding.DecodeString(encodedSecret)
	if err != nil {
		return nil, fmt.Errorf("token: decode signing secret: %w", err)
	}
	if ttlMillis <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}
	return &TokenService{
		key: key,
		ttl: time.Duration(ttlMillis) * time.Millisecond,
	}, nil
}

// Issue builds a signed token with subject, authority snapshot, iat and
// exp claims.
func (s *TokenService) Issue(subject string, authorities domain.Authorities) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Roles: authorities.Strings(),
	})
	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature and expiry, then returns the claims.
// Failures never echo key material; the caller must treat any error as
// unauthenticated.
func (s *TokenService) Validate(token string) (*ports.Claims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	authorities := make(domain.Authorities, 0, len(claims.Roles))
	for _, raw := range claims.Roles {
		if a, ok := domain.ParseAuthority(raw); ok {
			authorities = append(authorities, a)
		}
	}

	out := &ports.Claims{
		Subject:     claims.Subject,
		Authorities: authorities,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// TTLMillis exposes the configured token lifetime for login responses.
func (s *TokenService) TTLMillis() int64 {
	return s.ttl.Milliseconds()
}
