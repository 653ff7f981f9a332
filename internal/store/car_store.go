package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/models"
)

// Sentinel errors for car store operations
var (
	ErrCarNotFound = errors.New("car not found")
)

// CarStore defines the interface for car storage. All reads exclude
// soft-deleted rows, and every conditional mutation carries its own
// "not removed" predicate so that the check and the write are a single
// atomic statement in the storage engine.
type CarStore interface {
	// List returns non-removed cars. A non-nil orgID restricts the result to
	// that organization; nil returns cars across all organizations.
	List(ctx context.Context, orgID *uuid.UUID) ([]*models.Car, error)

	// Search returns non-removed cars whose registration number or bound
	// tracker id contains query, case-insensitive. orgID narrows like List.
	Search(ctx context.Context, query string, orgID *uuid.UUID) ([]*models.Car, error)

	// Get retrieves a non-removed car by ID.
	// Returns ErrCarNotFound if no visible row matches.
	Get(ctx context.Context, id uuid.UUID) (*models.Car, error)

	// Create inserts a new car.
	Create(ctx context.Context, car *models.Car) error

	// Update rewrites registration number, owning organization and tracker of
	// a non-removed car. Returns ErrCarNotFound if no visible row was affected.
	Update(ctx context.Context, car *models.Car) error

	// SoftDelete marks a car as removed.
	// Returns ErrCarNotFound if no visible row was affected.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// BindTracker sets the car's tracker id, replacing any previous value.
	// Returns ErrCarNotFound if no visible row was affected.
	BindTracker(ctx context.Context, id uuid.UUID, tracker string) error

	// UnbindTracker clears the car's tracker id. Unbinding an already
	// unbound car still succeeds. Returns ErrCarNotFound if no visible row
	// was affected.
	UnbindTracker(ctx context.Context, id uuid.UUID) error
}
