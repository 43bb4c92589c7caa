package ports

import "context"

// LoginResult carries the issued bearer token and its lifetime.
type LoginResult struct {
	Token           string
	ExpiresInMillis int64
}

// AuthService verifies credentials and issues bearer tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
