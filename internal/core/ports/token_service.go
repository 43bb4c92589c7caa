package ports

import (
	"time"

	"github.com/i2i/project-management/internal/core/domain"
)

// Claims is the validated content of a bearer token. Authorities are a
// snapshot taken at login, not live permissions.
type Claims struct {
	Subject     string
	Authorities domain.Authorities
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// TokenService issues and validates stateless signed tokens. The signing
// key and TTL are fixed at construction and never mutated, so a single
// instance is safe for unsynchronized concurrent use.
type TokenService interface {
	Issue(subject string, authorities domain.Authorities) (string, error)
	Validate(token string) (*Claims, error)
	TTLMillis() int64
}
