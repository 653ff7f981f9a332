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

// UserStore implements store.UserStore using PostgreSQL. Login uniqueness is
// enforced by the users_login_key constraint.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a new PostgreSQL-backed user store.
// It shares the connection pool with other stores.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{
		pool: pool,
	}
}

// List returns non-removed users, optionally restricted to one organization.
func (s *UserStore) List(ctx context.Context, orgID *uuid.UUID) ([]*models.User, error) {
	query := `
		SELECT user_id, login, password_hash, role, org_id, is_removed
		FROM users
		WHERE is_removed = false
	`
	args := []any{}

	if orgID != nil {
		query += ` AND org_id = $1`
		args = append(args, *orgID)
	}

	query += ` ORDER BY login`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", mapPostgresError(err))
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Get retrieves a non-removed user by ID.
func (s *UserStore) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT user_id, login, password_hash, role, org_id, is_removed
		FROM users
		WHERE user_id = $1 AND is_removed = false
	`

	return s.queryOne(ctx, query, id)
}

// GetByLogin retrieves a non-removed user by exact login. The comparison is
// case-sensitive.
func (s *UserStore) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `
		SELECT user_id, login, password_hash, role, org_id, is_removed
		FROM users
		WHERE login = $1 AND is_removed = false
	`

	return s.queryOne(ctx, query, login)
}

// Create inserts a new user.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_id, login, password_hash, role, org_id, is_removed)
		VALUES ($1, $2, $3, $4, $5, false)
	`

	_, err := s.pool.Exec(ctx, query,
		user.ID,
		user.Login,
		user.PasswordHash,
		user.Role.String(),
		user.OrgID,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("user_id", user.ID.String()).
		Str("login", user.Login).
		Str("role", user.Role.String()).
		Msg("Created user")

	return nil
}

// Update rewrites a non-removed user's login, password hash, role and owning
// organization in one statement.
func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			login = $2,
			password_hash = $3,
			role = $4,
			org_id = $5
		WHERE user_id = $1 AND is_removed = false
	`

	result, err := s.pool.Exec(ctx, query,
		user.ID,
		user.Login,
		user.PasswordHash,
		user.Role.String(),
		user.OrgID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrUserNotFound
	}

	log.Debug().
		Str("user_id", user.ID.String()).
		Msg("Updated user")

	return nil
}

// SoftDelete marks a user as removed.
func (s *UserStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users SET
			is_removed = true
		WHERE user_id = $1 AND is_removed = false
	`

	result, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete user: %w", mapPostgresError(err))
	}

	if result.RowsAffected() == 0 {
		return store.ErrUserNotFound
	}

	log.Debug().
		Str("user_id", id.String()).
		Msg("Soft deleted user")

	return nil
}

func (s *UserStore) queryOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var (
		user models.User
		role string
	)
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Login,
		&user.PasswordHash,
		&role,
		&user.OrgID,
		&user.IsRemoved,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", mapPostgresError(err))
	}

	user.Role = models.ParseRole(role)
	return &user, nil
}

func scanUsers(rows pgx.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		var (
			user models.User
			role string
		)
		err := rows.Scan(
			&user.ID,
			&user.Login,
			&user.PasswordHash,
			&role,
			&user.OrgID,
			&user.IsRemoved,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Role = models.ParseRole(role)
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
