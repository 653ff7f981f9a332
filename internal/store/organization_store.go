package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/models"
)

// Sentinel errors for organization store operations
var (
	ErrOrganizationNotFound = errors.New("organization not found")
)

// OrganizationStore defines the interface for organization storage.
// Organizations are the tenants of the system. All reads exclude soft-deleted
// rows; a soft-deleted organization is indistinguishable from one that never
// existed.
type OrganizationStore interface {
	// List returns all non-removed organizations. A non-empty nameFilter
	// narrows the result to names containing the filter, case-insensitive.
	List(ctx context.Context, nameFilter string) ([]*models.Organization, error)

	// Get retrieves a non-removed organization by ID.
	// Returns ErrOrganizationNotFound if no visible row matches.
	Get(ctx context.Context, id uuid.UUID) (*models.Organization, error)

	// Create inserts a new organization.
	Create(ctx context.Context, org *models.Organization) error

	// Update renames an existing non-removed organization.
	// Returns ErrOrganizationNotFound if no visible row was affected.
	Update(ctx context.Context, org *models.Organization) error

	// SoftDelete marks an organization as removed. Deletion never cascades:
	// cars and users keep their organization reference.
	// Returns ErrOrganizationNotFound if no visible row was affected.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
