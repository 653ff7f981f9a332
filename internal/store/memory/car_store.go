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

// CarStore implements store.CarStore using in-memory storage. Used for
// development and tests - data is lost on restart.
type CarStore struct {
	mu sync.RWMutex

	cars map[uuid.UUID]*models.Car // car_id -> Car
}

// NewCarStore creates a new in-memory car store.
func NewCarStore() *CarStore {
	return &CarStore{
		cars: make(map[uuid.UUID]*models.Car),
	}
}

// List returns non-removed cars, optionally restricted to one organization.
func (s *CarStore) List(ctx context.Context, orgID *uuid.UUID) ([]*models.Car, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Car
	for _, car := range s.cars {
		if car.IsRemoved {
			continue
		}
		if orgID != nil && car.OrgID != *orgID {
			continue
		}
		result = append(result, cloneCar(car))
	}

	sortCars(result)

	return result, nil
}

// Search returns non-removed cars whose registration number or tracker id
// contains query, case-insensitive.
func (s *CarStore) Search(ctx context.Context, query string, orgID *uuid.UUID) ([]*models.Car, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)

	var result []*models.Car
	for _, car := range s.cars {
		if car.IsRemoved {
			continue
		}
		if orgID != nil && car.OrgID != *orgID {
			continue
		}
		if !carMatches(car, needle) {
			continue
		}
		result = append(result, cloneCar(car))
	}

	sortCars(result)

	return result, nil
}

// Get retrieves a non-removed car by ID.
func (s *CarStore) Get(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	car, exists := s.cars[id]
	if !exists || car.IsRemoved {
		return nil, store.ErrCarNotFound
	}

	return cloneCar(car), nil
}

// Create inserts a new car.
func (s *CarStore) Create(ctx context.Context, car *models.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cars[car.ID] = cloneCar(car)

	return nil
}

// Update rewrites a non-removed car's registration number, owning
// organization and tracker.
func (s *CarStore) Update(ctx context.Context, car *models.Car) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.cars[car.ID]
	if !exists || existing.IsRemoved {
		return store.ErrCarNotFound
	}

	existing.RegNum = car.RegNum
	existing.OrgID = car.OrgID
	existing.GPSTracker = cloneTracker(car.GPSTracker)

	return nil
}

// SoftDelete marks a car as removed.
func (s *CarStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.cars[id]
	if !exists || existing.IsRemoved {
		return store.ErrCarNotFound
	}

	existing.IsRemoved = true

	return nil
}

// BindTracker sets the car's tracker, replacing any previous binding.
func (s *CarStore) BindTracker(ctx context.Context, id uuid.UUID, tracker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.cars[id]
	if !exists || existing.IsRemoved {
		return store.ErrCarNotFound
	}

	existing.GPSTracker = &tracker

	return nil
}

// UnbindTracker clears the car's tracker. Unbinding an unbound car succeeds.
func (s *CarStore) UnbindTracker(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.cars[id]
	if !exists || existing.IsRemoved {
		return store.ErrCarNotFound
	}

	existing.GPSTracker = nil

	return nil
}

func carMatches(car *models.Car, needle string) bool {
	if strings.Contains(strings.ToLower(car.RegNum), needle) {
		return true
	}
	return car.GPSTracker != nil && strings.Contains(strings.ToLower(*car.GPSTracker), needle)
}

func cloneCar(car *models.Car) *models.Car {
	clone := *car
	clone.GPSTracker = cloneTracker(car.GPSTracker)
	return &clone
}

func cloneTracker(tracker *string) *string {
	if tracker == nil {
		return nil
	}
	t := *tracker
	return &t
}

func sortCars(cars []*models.Car) {
	sort.Slice(cars, func(i, j int) bool { return cars[i].RegNum < cars[j].RegNum })
}
