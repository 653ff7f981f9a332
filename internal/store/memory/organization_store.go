package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/medfleet/backoffice/internal/models"
	"github.com/medfleet/backoffice/internal/store"
)

// OrganizationStore implements store.OrganizationStore using in-memory
// storage. Used for development and tests - data is lost on restart.
type OrganizationStore struct {
	mu sync.RWMutex

	organizations map[uuid.UUID]*models.Organization // org_id -> Organization
}

// NewOrganizationStore creates a new in-memory organization store.
func NewOrganizationStore() *OrganizationStore {
	return &OrganizationStore{
		organizations: make(map[uuid.UUID]*models.Organization),
	}
}

// List returns all non-removed organizations, optionally filtered by name.
func (s *OrganizationStore) List(ctx context.Context, nameFilter string) ([]*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter := strings.ToLower(nameFilter)

	var result []*models.Organization
	for _, org := range s.organizations {
		if org.IsRemoved {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(org.Name), filter) {
			continue
		}
		clone := *org
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result, nil
}

// Get retrieves a non-removed organization by ID.
func (s *OrganizationStore) Get(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, exists := s.organizations[id]
	if !exists || org.IsRemoved {
		return nil, store.ErrOrganizationNotFound
	}

	clone := *org
	return &clone, nil
}

// Create inserts a new organization.
func (s *OrganizationStore) Create(ctx context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clone to avoid external modifications
	clone := *org
	s.organizations[org.ID] = &clone

	return nil
}

// Update renames a non-removed organization.
func (s *OrganizationStore) Update(ctx context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.organizations[org.ID]
	if !exists || existing.IsRemoved {
		return store.ErrOrganizationNotFound
	}

	existing.Name = org.Name

	return nil
}

// SoftDelete marks an organization as removed. There is no cascade.
func (s *OrganizationStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.organizations[id]
	if !exists || existing.IsRemoved {
		return store.ErrOrganizationNotFound
	}

	existing.IsRemoved = true

	return nil
}
