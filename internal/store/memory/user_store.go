package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/models"
	"github.com/medfleet/backoffice/internal/store"
)

// UserStore implements store.UserStore using in-memory storage. Used for
// development and tests - data is lost on restart.
type UserStore struct {
	mu sync.RWMutex

	users map[uuid.UUID]*models.User // user_id -> User
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[uuid.UUID]*models.User),
	}
}

// List returns non-removed users, optionally restricted to one organization.
func (s *UserStore) List(ctx context.Context, orgID *uuid.UUID) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.User
	for _, user := range s.users {
		if user.IsRemoved {
			continue
		}
		if orgID != nil && user.OrgID != *orgID {
			continue
		}
		clone := *user
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Login < result[j].Login })

	return result, nil
}

// Get retrieves a non-removed user by ID.
func (s *UserStore) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists || user.IsRemoved {
		return nil, store.ErrUserNotFound
	}

	clone := *user
	return &clone, nil
}

// GetByLogin retrieves a non-removed user by exact, case-sensitive login.
func (s *UserStore) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Login == login && !user.IsRemoved {
			clone := *user
			return &clone, nil
		}
	}

	return nil, store.ErrUserNotFound
}

// Create inserts a new user, enforcing login uniqueness.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loginTaken(user.Login, user.ID) {
		return store.ErrLoginTaken
	}

	clone := *user
	s.users[user.ID] = &clone

	return nil
}

// Update rewrites a non-removed user's login, password hash, role and owning
// organization.
func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.users[user.ID]
	if !exists || existing.IsRemoved {
		return store.ErrUserNotFound
	}

	if s.loginTaken(user.Login, user.ID) {
		return store.ErrLoginTaken
	}

	existing.Login = user.Login
	existing.PasswordHash = user.PasswordHash
	existing.Role = user.Role
	existing.OrgID = user.OrgID

	return nil
}

// SoftDelete marks a user as removed.
func (s *UserStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.users[id]
	if !exists || existing.IsRemoved {
		return store.ErrUserNotFound
	}

	existing.IsRemoved = true

	return nil
}

// loginTaken reports whether another user already holds login. Callers must
// hold the write lock. Matches the unique constraint in the postgres schema,
// which spans removed rows as well.
func (s *UserStore) loginTaken(login string, selfID uuid.UUID) bool {
	for _, user := range s.users {
		if user.ID != selfID && user.Login == login {
			return true
		}
	}
	return false
}
