package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"ecoport/internal/domain"
	"ecoport/internal/pricing"
	"ecoport/internal/redis"
	"ecoport/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK PICKUP REPOSITORY
// ──────────────────────────────────────────────

// MockPickupRepository is a mock implementation of PickupRepository.
type MockPickupRepository struct {
	mu      sync.RWMutex
	pickups map[string]*domain.PickupRequest

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockPickupRepository creates a new mock pickup repository.
func NewMockPickupRepository() *MockPickupRepository {
	return &MockPickupRepository{
		pickups: make(map[string]*domain.PickupRequest),
	}
}

// AddPickup adds a pickup to the mock repository.
func (m *MockPickupRepository) AddPickup(pickup *domain.PickupRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pickups[pickup.ID] = pickup
}

func (m *MockPickupRepository) Create(ctx context.Context, pickup *domain.PickupRequest) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pickups[pickup.ID] = pickup
	return nil
}

func (m *MockPickupRepository) GetByID(ctx context.Context, id string) (*domain.PickupRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pickup, ok := m.pickups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *pickup
	return &copied, nil
}

func (m *MockPickupRepository) List(ctx context.Context, filter repository.PickupFilter) ([]*domain.PickupRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var pickups []*domain.PickupRequest
	for _, p := range m.pickups {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		copied := *p
		pickups = append(pickups, &copied)
	}
	sort.Slice(pickups, func(i, j int) bool {
		return pickups[i].CreatedAt.After(pickups[j].CreatedAt)
	})
	return pickups, nil
}

func (m *MockPickupRepository) Update(ctx context.Context, pickup *domain.PickupRequest) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pickups[pickup.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *pickup
	m.pickups[pickup.ID] = &copied
	return nil
}

func (m *MockPickupRepository) CountByStatus(ctx context.Context) (map[domain.PickupStatus]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[domain.PickupStatus]int)
	for _, p := range m.pickups {
		counts[p.Status]++
	}
	return counts, nil
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	UpdateStatusCallCount int32

	UpdateStatusError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *driver
	return &copied, nil
}

func (m *MockDriverRepository) List(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var drivers []*domain.Driver
	for _, d := range m.drivers {
		if status != "" && d.Status != status {
			continue
		}
		copied := *d
		drivers = append(drivers, &copied)
	}
	return drivers, nil
}

func (m *MockDriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Status = status
	return nil
}

func (m *MockDriverRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Location = &pricing.GeoPoint{Lat: lat, Lng: lng}
	return nil
}

// ──────────────────────────────────────────────
// MOCK RATING REPOSITORY
// ──────────────────────────────────────────────

// MockRatingRepository is a mock implementation of RatingRepository.
type MockRatingRepository struct {
	mu      sync.RWMutex
	ratings map[string]*domain.Rating // keyed by pickup ID
}

// NewMockRatingRepository creates a new mock rating repository.
func NewMockRatingRepository() *MockRatingRepository {
	return &MockRatingRepository{
		ratings: make(map[string]*domain.Rating),
	}
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ratings[rating.PickupID]; ok {
		return repository.ErrDuplicate
	}
	m.ratings[rating.PickupID] = rating
	return nil
}

func (m *MockRatingRepository) GetByPickupID(ctx context.Context, pickupID string) (*domain.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rating, ok := m.ratings[pickupID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *rating
	return &copied, nil
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is a mock implementation of LocationStoreInterface.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations []redis.DriverLocation

	FindError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{}
}

// SetLocations replaces the stored locations, in returned order.
func (m *MockLocationStore) SetLocations(locations []redis.DriverLocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations = locations
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, loc := range m.locations {
		if loc.DriverID == driverID {
			m.locations[i].Lat = lat
			m.locations[i].Lng = lng
			return nil
		}
	}
	m.locations = append(m.locations, redis.DriverLocation{DriverID: driverID, Lat: lat, Lng: lng})
	return nil
}

func (m *MockLocationStore) FindNearbyDrivers(ctx context.Context, lat, lng, radiusKm float64) ([]redis.DriverLocation, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]redis.DriverLocation, len(m.locations))
	copy(result, m.locations)
	return result, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, loc := range m.locations {
		if loc.DriverID == driverID {
			m.locations = append(m.locations[:i], m.locations[i+1:]...)
			return nil
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[driverID] {
		return false, nil
	}
	m.locks[driverID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseDriverLock(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, driverID)
	return nil
}

// HoldLock pre-acquires a lock, simulating a concurrent assignment.
func (m *MockLockStore) HoldLock(driverID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[driverID] = true
}

// Ensure mocks satisfy the interfaces they stand in for.
var (
	_ repository.PickupRepository  = (*MockPickupRepository)(nil)
	_ repository.DriverRepository  = (*MockDriverRepository)(nil)
	_ repository.RatingRepository  = (*MockRatingRepository)(nil)
	_ redis.LocationStoreInterface = (*MockLocationStore)(nil)
	_ redis.LockStoreInterface     = (*MockLockStore)(nil)
)
