package domain

import "errors"

// Sentinel errors shared by all services. Callers classify outcomes with
// errors.Is; the HTTP layer maps each kind to a single status code.
var (
	// ErrValidation covers malformed input and illegal state transitions.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the referenced aggregate is absent or soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrBadCredentials is returned for any login failure: unknown email,
	// soft-deleted account, or wrong password. The cases are deliberately
	// indistinguishable to prevent account enumeration.
	ErrBadCredentials = errors.New("invalid email or password")

	// ErrTokenExpired means the token's signature verified but its expiry
	// has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid means the token is malformed or its signature does
	// not verify.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrForbidden means the caller is authenticated but lacks a required
	// authority.
	ErrForbidden = errors.New("access forbidden")

	// ErrStoreFailure wraps unexpected persistence errors. The original
	// cause is logged server-side and never surfaced to callers.
	ErrStoreFailure = errors.New("storage operation failed")
)
