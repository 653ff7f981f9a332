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

// CarStore implements store.CarStore using PostgreSQL.
type CarStore struct {
	pool *pgxpool.Pool
}

// NewCarStore creates a new PostgreSQL-backed car store.
// It shares the connection pool with other stores.
func NewCarStore(pool *pgxpool.Pool) *CarStore {
	return &CarStore{
		pool: pool,
	}
}

// List returns non-removed cars, optionally restricted to one organization.
// The organization predicate is part of the query itself; rows outside scope
// are never fetched.
func (s *CarStore) List(ctx context.Context, orgID *uuid.UUID) ([]*models.Car, error) {
	query := `
		SELECT car_id, reg_num, org_id, gps_tracker, is_removed
		FROM cars
		WHERE is_removed = false
	`
	args := []any{}

	if orgID != nil {
		query += ` AND org_id = $1`
		args = append(args, *orgID)
	}

	query += ` ORDER BY reg_num`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", mapPostgresError(err))
	}
	defer rows.Close()

	return scanCars(rows)
}

// Search returns non-removed cars whose registration number or tracker id
// contains query, case-insensitive.
func (s *CarStore) Search(ctx context.Context, query string, orgID *uuid.UUID) ([]*models.Car, error) {
	sql := `
		SELECT car_id, reg_num, org_id, gps_tracker, is_removed
		FROM cars
		WHERE is_removed = false
		AND (reg_num ILIKE $1 OR gps_tracker ILIKE $1)
	`
	args := []any{"%" + query + "%"}

	if orgID != nil {
		sql += ` AND org_id = $2`
		args = append(args, *orgID)
	}

	sql += ` ORDER BY reg_num`

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search cars: %w", mapPostgresError(err))
	}
	defer rows.Close()

	return scanCars(rows)
}

// Get retrieves a non-removed car by ID.
func (s *CarStore) Get(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	query := `
		SELECT car_id, reg_num, org_id, gps_tracker, is_removed
		FROM cars
		WHERE car_id = $1 AND is_removed = false
	`

	var car models.Car
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&car.ID,
		&car.RegNum,
		&car.OrgID,
		&car.GPSTracker,
		&car.IsRemoved,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to get car: %w", mapPostgresError(err))
	}

	return &car, nil
}

// Create inserts a new car.
func (s *CarStore) Create(ctx context.Context, car *models.Car) error {
	query := `
		INSERT INTO cars (car_id, reg_num, org_id, gps_tracker, is_removed)
		VALUES ($1, $2, $3, $4, false)
	`

	_, err := s.pool.Exec(ctx, query,
		car.ID,
		car.RegNum,
		car.OrgID,
		car.GPSTracker,
	)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("car_id", car.ID.String()).
		Str("reg_num", car.RegNum).
		Str("org_id", car.OrgID.String()).
		Msg("Created car")

	return nil
}

// Update rewrites a non-removed car's registration number, owning
// organization and tracker in one statement.
func (s *CarStore) Update(ctx context.Context, car *models.Car) error {
	query := `
		UPDATE cars SET
			reg_num = $2,
			org_id = $3,
			gps_tracker = $4
		WHERE car_id = $1 AND is_removed = false
	`

	result, err := s.pool.Exec(ctx, query,
		car.ID,
		car.RegNum,
		car.OrgID,
		car.GPSTracker,
	)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrCarNotFound
	}

	log.Debug().
		Str("car_id", car.ID.String()).
		Msg("Updated car")

	return nil
}

// SoftDelete marks a car as removed.
func (s *CarStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE cars SET
			is_removed = true
		WHERE car_id = $1 AND is_removed = false
	`

	result, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete car: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrCarNotFound
	}

	log.Debug().
		Str("car_id", id.String()).
		Msg("Soft deleted car")

	return nil
}

// BindTracker sets the car's tracker, replacing any previous binding.
func (s *CarStore) BindTracker(ctx context.Context, id uuid.UUID, tracker string) error {
	query := `
		UPDATE cars SET
			gps_tracker = $2
		WHERE car_id = $1 AND is_removed = false
	`

	result, err := s.pool.Exec(ctx, query, id, tracker)
	if err != nil {
		return fmt.Errorf("failed to bind tracker: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrCarNotFound
	}

	log.Debug().
		Str("car_id", id.String()).
		Str("tracker", tracker).
		Msg("Bound tracker")

	return nil
}

// UnbindTracker clears the car's tracker. Already unbound cars still count as
// affected rows, so this reports success for any visible car.
func (s *CarStore) UnbindTracker(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE cars SET
			gps_tracker = NULL
		WHERE car_id = $1 AND is_removed = false
	`

	result, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to unbind tracker: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrCarNotFound
	}

	log.Debug().
		Str("car_id", id.String()).
		Msg("Unbound tracker")

	return nil
}

func scanCars(rows pgx.Rows) ([]*models.Car, error) {
	var cars []*models.Car
	for rows.Next() {
		var car models.Car
		err := rows.Scan(
			&car.ID,
			&car.RegNum,
			&car.OrgID,
			&car.GPSTracker,
			&car.IsRemoved,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, &car)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cars: %w", err)
	}

	return cars, nil
}
