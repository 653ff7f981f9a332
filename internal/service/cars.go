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

// Cars orchestrates car operations: authorization policy first, organization
// scope for collection reads, then storage. No storage call is made for a
// denied mutation.
type Cars struct {
	store store.CarStore
}

// NewCars creates the car service.
func NewCars(carStore store.CarStore) *Cars {
	return &Cars{store: carStore}
}

// List returns the cars visible to p. requestedOrg is advisory and only
// honored for SuperAdmin; every other caller is confined to its home
// organization.
func (s *Cars) List(ctx context.Context, p auth.Principal, requestedOrg *uuid.UUID) ([]*models.Car, error) {
	scope := auth.EffectiveScope(p, requestedOrg)
	return s.store.List(ctx, scope)
}

// Search returns visible cars whose registration number or tracker id
// contains query, case-insensitive.
func (s *Cars) Search(ctx context.Context, p auth.Principal, query string, requestedOrg *uuid.UUID) ([]*models.Car, error) {
	scope := auth.EffectiveScope(p, requestedOrg)
	return s.store.Search(ctx, query, scope)
}

// Get retrieves a single car by id.
func (s *Cars) Get(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.Car, error) {
	car, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, carStoreError(err)
	}
	return car, nil
}

// Create registers a new car for the given organization and returns its id.
func (s *Cars) Create(ctx context.Context, p auth.Principal, regNum string, orgID uuid.UUID, tracker *string) (uuid.UUID, error) {
	if strings.TrimSpace(regNum) == "" {
		return uuid.Nil, fmt.Errorf("%w: registration number is required", ErrValidation)
	}

	if !auth.CanMutate(p, orgID) {
		return uuid.Nil, ErrUnauthorized
	}

	car := &models.Car{
		ID:         uuid.New(),
		RegNum:     regNum,
		OrgID:      orgID,
		GPSTracker: tracker,
	}

	if err := s.store.Create(ctx, car); err != nil {
		return uuid.Nil, carStoreError(err)
	}

	return car.ID, nil
}

// Update rewrites a car's registration number, owning organization and
// tracker. Changing the owning organization requires mutation rights over
// both the current and the requested organization.
func (s *Cars) Update(ctx context.Context, p auth.Principal, id uuid.UUID, regNum string, orgID uuid.UUID, tracker *string) error {
	if strings.TrimSpace(regNum) == "" {
		return fmt.Errorf("%w: registration number is required", ErrValidation)
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return carStoreError(err)
	}

	if !auth.CanReassign(p, current.OrgID, orgID) {
		return ErrUnauthorized
	}

	car := &models.Car{
		ID:         id,
		RegNum:     regNum,
		OrgID:      orgID,
		GPSTracker: tracker,
	}

	if err := s.store.Update(ctx, car); err != nil {
		return carStoreError(err)
	}

	return nil
}

// Remove soft-deletes a car.
func (s *Cars) Remove(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return carStoreError(err)
	}

	if !auth.CanMutate(p, current.OrgID) {
		return ErrUnauthorized
	}

	if err := s.store.SoftDelete(ctx, id); err != nil {
		return carStoreError(err)
	}

	return nil
}

// BindTracker binds a GPS tracker to a car, replacing any previous binding.
func (s *Cars) BindTracker(ctx context.Context, p auth.Principal, id uuid.UUID, tracker string) error {
	if strings.TrimSpace(tracker) == "" {
		return fmt.Errorf("%w: tracker id is required", ErrValidation)
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return carStoreError(err)
	}

	if !auth.CanMutate(p, current.OrgID) {
		return ErrUnauthorized
	}

	if err := s.store.BindTracker(ctx, id, tracker); err != nil {
		return carStoreError(err)
	}

	return nil
}

// UnbindTracker removes a car's tracker binding. Unbinding an already
// unbound car still reports success.
func (s *Cars) UnbindTracker(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return carStoreError(err)
	}

	if !auth.CanMutate(p, current.OrgID) {
		return ErrUnauthorized
	}

	if err := s.store.UnbindTracker(ctx, id); err != nil {
		return carStoreError(err)
	}

	return nil
}

func carStoreError(err error) error {
	if errors.Is(err, store.ErrCarNotFound) {
		return ErrNotFound
	}
	return err
}
