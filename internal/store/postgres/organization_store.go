package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/medfleet/backoffice/internal/models"
	"github.com/medfleet/backoffice/internal/store"
)

// OrganizationStore implements store.OrganizationStore using PostgreSQL.
type OrganizationStore struct {
	pool *pgxpool.Pool
}

// NewOrganizationStore creates a new PostgreSQL-backed organization store.
// It shares the connection pool with other stores.
func NewOrganizationStore(pool *pgxpool.Pool) *OrganizationStore {
	return &OrganizationStore{
		pool: pool,
	}
}

// List returns all non-removed organizations, optionally filtered by name.
func (s *OrganizationStore) List(ctx context.Context, nameFilter string) ([]*models.Organization, error) {
	query := `
		SELECT org_id, name, is_removed
		FROM organizations
		WHERE is_removed = false
	`
	args := []any{}

	if nameFilter != "" {
		query += ` AND name ILIKE $1`
		args = append(args, "%"+nameFilter+"%")
	}

	query += ` ORDER BY name`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", mapPostgresError(err))
	}
	defer rows.Close()

	return scanOrganizations(rows)
}

// Get retrieves a non-removed organization by ID.
func (s *OrganizationStore) Get(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	query := `
		SELECT org_id, name, is_removed
		FROM organizations
		WHERE org_id = $1 AND is_removed = false
	`

	var org models.Organization
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&org.ID,
		&org.Name,
		&org.IsRemoved,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", mapPostgresError(err))
	}

	return &org, nil
}

// Create inserts a new organization.
func (s *OrganizationStore) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (org_id, name, is_removed)
		VALUES ($1, $2, false)
	`

	_, err := s.pool.Exec(ctx, query, org.ID, org.Name)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("org_id", org.ID.String()).
		Str("name", org.Name).
		Msg("Created organization")

	return nil
}

// Update renames a non-removed organization.
func (s *OrganizationStore) Update(ctx context.Context, org *models.Organization) error {
	query := `
		UPDATE organizations SET
			name = $2
		WHERE org_id = $1 AND is_removed = false
	`

	result, err := s.pool.Exec(ctx, query, org.ID, org.Name)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrOrganizationNotFound
	}

	log.Debug().
		Str("org_id", org.ID.String()).
		Msg("Updated organization")

	return nil
}

// SoftDelete marks an organization as removed. Cars and users referencing it
// are untouched; there is no cascade.
func (s *OrganizationStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE organizations SET
			is_removed = true
		WHERE org_id = $1 AND is_removed = false
	`

	result, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete organization: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrOrganizationNotFound
	}

	log.Info().
		Str("org_id", id.String()).
		Msg("Soft deleted organization")

	return nil
}

func scanOrganizations(rows pgx.Rows) ([]*models.Organization, error) {
	var orgs []*models.Organization
	for rows.Next() {
		var org models.Organization
		err := rows.Scan(
			&org.ID,
			&org.Name,
			&org.IsRemoved,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, &org)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}

	return orgs, nil
}
