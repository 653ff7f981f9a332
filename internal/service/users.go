package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/auth"
	"github.com/medfleet/backoffice/internal/models"
	"github.com/medfleet/backoffice/internal/store"
)

// Hasher hashes and verifies account passwords.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// Users orchestrates staff account operations. Plaintext passwords enter
// here, are hashed immediately and never persist or appear in logs.
type Users struct {
	store  store.UserStore
	hasher Hasher
}

// NewUsers creates the user service.
func NewUsers(userStore store.UserStore, hasher Hasher) *Users {
	return &Users{store: userStore, hasher: hasher}
}

// List returns the users visible to p, confined to p's home organization
// unless p is SuperAdmin.
func (s *Users) List(ctx context.Context, p auth.Principal, requestedOrg *uuid.UUID) ([]*models.User, error) {
	scope := auth.EffectiveScope(p, requestedOrg)
	return s.store.List(ctx, scope)
}

// Get retrieves a single user by id.
func (s *Users) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.User, error) {
	user, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, userStoreError(err)
	}
	return user, nil
}

// Create registers a new account and returns its id. The caller needs
// mutation rights over the target organization and may not grant a role
// above its own.
func (s *Users) Create(ctx context.Context, p auth.Principal, login, password string, role models.Role, orgID uuid.UUID) (uuid.UUID, error) {
	if strings.TrimSpace(login) == "" {
		return uuid.Nil, fmt.Errorf("%w: login is required", ErrValidation)
	}
	if password == "" {
		return uuid.Nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if !role.Valid() {
		return uuid.Nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	if !auth.CanMutate(p, orgID) {
		return uuid.Nil, ErrUnauthorized
	}
	if !auth.CanAssignRole(p, role) {
		return uuid.Nil, ErrUnauthorized
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: hash,
		Role:         role,
		OrgID:        orgID,
	}

	if err := s.store.Create(ctx, user); err != nil {
		return uuid.Nil, userStoreError(err)
	}

	return user.ID, nil
}

// Update rewrites an account. password nil keeps the current hash; non-nil
// replaces it. Moving the account to another organization requires mutation
// rights over both organizations.
func (s *Users) Update(ctx context.Context, p auth.Principal, id uuid.UUID, login string, password *string, role models.Role, orgID uuid.UUID) error {
	if strings.TrimSpace(login) == "" {
		return fmt.Errorf("%w: login is required", ErrValidation)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if password != nil && *password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrValidation)
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return userStoreError(err)
	}

	if !auth.CanReassign(p, current.OrgID, orgID) {
		return ErrUnauthorized
	}
	if !auth.CanAssignRole(p, role) {
		return ErrUnauthorized
	}

	hash := current.PasswordHash
	if password != nil {
		hash, err = s.hasher.Hash(*password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
	}

	user := &models.User{
		ID:           id,
		Login:        login,
		PasswordHash: hash,
		Role:         role,
		OrgID:        orgID,
	}

	if err := s.store.Update(ctx, user); err != nil {
		return userStoreError(err)
	}

	return nil
}

// Remove soft-deletes an account.
func (s *Users) Remove(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return userStoreError(err)
	}

	if !auth.CanMutate(p, current.OrgID) {
		return ErrUnauthorized
	}

	if err := s.store.SoftDelete(ctx, id); err != nil {
		return userStoreError(err)
	}

	return nil
}

func userStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrLoginTaken):
		return fmt.Errorf("%w: login already taken", ErrValidation)
	}
	return err
}
