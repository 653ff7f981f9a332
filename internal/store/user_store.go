package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/models"
)

// Sentinel errors for user store operations
var (
	ErrUserNotFound = errors.New("user not found")
	ErrLoginTaken   = errors.New("login already taken")
)

// UserStore defines the interface for staff account storage. Login uniqueness
// is enforced here, not by callers. All reads exclude soft-deleted rows.
type UserStore interface {
	// List returns non-removed users. A non-nil orgID restricts the result to
	// that organization; nil returns users across all organizations.
	List(ctx context.Context, orgID *uuid.UUID) ([]*models.User, error)

	// Get retrieves a non-removed user by ID.
	// Returns ErrUserNotFound if no visible row matches.
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByLogin retrieves a non-removed user by exact, case-sensitive login.
	// Returns ErrUserNotFound if no visible row matches.
	GetByLogin(ctx context.Context, login string) (*models.User, error)

	// Create inserts a new user. Returns ErrLoginTaken if the login is
	// already in use.
	Create(ctx context.Context, user *models.User) error

	// Update rewrites login, password hash, role and owning organization of a
	// non-removed user. Returns ErrUserNotFound if no visible row was
	// affected, ErrLoginTaken if the new login collides.
	Update(ctx context.Context, user *models.User) error

	// SoftDelete marks a user as removed.
	// Returns ErrUserNotFound if no visible row was affected.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
