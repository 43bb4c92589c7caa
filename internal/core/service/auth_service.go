package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

// AuthService verifies credentials against stored bcrypt hashes and
// issues bearer tokens carrying the caller's authority snapshot.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, tokens: tokens, log: log}
}

// Login authenticates an email/password pair. Unknown email,
// soft-deleted account and wrong password all yield ErrBadCredentials so
// the response cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrBadCredentials
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, failStore(s.log, err, "find user by email")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("email", email).Msg("login rejected")
		return nil, domain.ErrBadCredentials
	}

	authorities, err := s.activeAuthorities(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Email, authorities)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("token issuance failed")
		return nil, err
	}

	s.log.Info().Str("email", email).Msg("login succeeded")
	return &ports.LoginResult{
		Token:           token,
		ExpiresInMillis: s.tokens.TTLMillis(),
	}, nil
}

// activeAuthorities derives the authority snapshot from the user's
// currently active roles. Soft-deleted roles carry no authority even
// when the user still references them.
func (s *AuthService) activeAuthorities(ctx context.Context, user *domain.User) (domain.Authorities, error) {
	if len(user.RoleIDs) == 0 {
		return nil, nil
	}
	roles, err := s.roles.FindActiveByIDs(ctx, user.RoleIDs)
	if err != nil {
		return nil, failStore(s.log, err, "find user roles")
	}
	authorities := make(domain.Authorities, 0, len(roles))
	for _, role := range roles {
		if a, ok := role.Authority(); ok {
			authorities = append(authorities, a)
		}
	}
	return authorities, nil
}
