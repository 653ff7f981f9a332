package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medfleet/backoffice/internal/auth"
	"github.com/medfleet/backoffice/internal/store"
)

// Auth exchanges verified credentials for a signed access token.
type Auth struct {
	users  store.UserStore
	hasher Hasher
	signer *auth.Signer
}

// NewAuth creates the authentication service.
func NewAuth(userStore store.UserStore, hasher Hasher, signer *auth.Signer) *Auth {
	return &Auth{users: userStore, hasher: hasher, signer: signer}
}

// Login verifies the credentials and returns a signed token carrying the
// account's id, login, role and home organization.
//
// Unknown login, soft-deleted account and wrong password all surface as the
// same ErrAuthFailed, so a caller cannot enumerate logins.
func (s *Auth) Login(ctx context.Context, login, password string) (string, error) {
	if login == "" || password == "" {
		return "", fmt.Errorf("%w: login and password are required", ErrValidation)
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrAuthFailed
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrAuthFailed
	}

	token, err := s.signer.Sign(user.ID, user.Login, user.Role, user.OrgID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("user_id", user.ID.String()).
		Str("role", user.Role.String()).
		Msg("issued access token")

	return token, nil
}
