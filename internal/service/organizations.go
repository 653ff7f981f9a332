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

// Organizations orchestrates institution management. Reads are open to every
// authenticated role; mutations are SuperAdmin territory.
type Organizations struct {
	store store.OrganizationStore
}

// NewOrganizations creates the organization service.
func NewOrganizations(orgStore store.OrganizationStore) *Organizations {
	return &Organizations{store: orgStore}
}

// List returns all institutions, optionally narrowed by a case-insensitive
// name filter.
func (s *Organizations) List(ctx context.Context, p auth.Principal, nameFilter string) ([]*models.Organization, error) {
	return s.store.List(ctx, nameFilter)
}

// Get retrieves a single institution by id.
func (s *Organizations) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.Organization, error) {
	org, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, orgStoreError(err)
	}
	return org, nil
}

// Create registers a new institution and returns its id.
func (s *Organizations) Create(ctx context.Context, p auth.Principal, name string) (uuid.UUID, error) {
	if strings.TrimSpace(name) == "" {
		return uuid.Nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if !auth.CanManageOrganizations(p) {
		return uuid.Nil, ErrUnauthorized
	}

	org := &models.Organization{
		ID:   uuid.New(),
		Name: name,
	}

	if err := s.store.Create(ctx, org); err != nil {
		return uuid.Nil, orgStoreError(err)
	}

	return org.ID, nil
}

// Update renames an institution.
func (s *Organizations) Update(ctx context.Context, p auth.Principal, id uuid.UUID, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	if !auth.CanManageOrganizations(p) {
		return ErrUnauthorized
	}

	org := &models.Organization{
		ID:   id,
		Name: name,
	}

	if err := s.store.Update(ctx, org); err != nil {
		return orgStoreError(err)
	}

	return nil
}

// Remove soft-deletes an institution. Cars and users referencing it are left
// in place; there is no cascade.
func (s *Organizations) Remove(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	if !auth.CanManageOrganizations(p) {
		return ErrUnauthorized
	}

	if err := s.store.SoftDelete(ctx, id); err != nil {
		return orgStoreError(err)
	}

	return nil
}

func orgStoreError(err error) error {
	if errors.Is(err, store.ErrOrganizationNotFound) {
		return ErrNotFound
	}
	return err
}
