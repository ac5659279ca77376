package service

import (
	"context"
	"time"

	"ecoport/internal/domain"
	redisstore "ecoport/internal/redis"
	"ecoport/internal/repository"
)

const (
	defaultSuggestRadiusKm = 10.0
	driverLockTTL          = 10 * time.Second
)

// AssignmentService assigns drivers to approved pickups and suggests nearby
// candidates from the Redis geo index.
type AssignmentService struct {
	pickupRepo    repository.PickupRepository
	driverRepo    repository.DriverRepository
	locationStore redisstore.LocationStoreInterface
	lockStore     redisstore.LockStoreInterface
	cacheStore    *redisstore.CacheStore
	notifier      *NotificationService
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	pickupRepo repository.PickupRepository,
	driverRepo repository.DriverRepository,
	locationStore redisstore.LocationStoreInterface,
	lockStore redisstore.LockStoreInterface,
	cacheStore *redisstore.CacheStore,
	notifier *NotificationService,
) *AssignmentService {
	return &AssignmentService{
		pickupRepo:    pickupRepo,
		driverRepo:    driverRepo,
		locationStore: locationStore,
		lockStore:     lockStore,
		cacheStore:    cacheStore,
		notifier:      notifier,
	}
}

// AssignDriver assigns an available driver to an approved pickup. A driver
// lock guards against two concurrent assignments of the same driver.
func (s *AssignmentService) AssignDriver(ctx context.Context, pickupID, driverID, assignedBy string) (*domain.PickupRequest, error) {
	if pickupID == "" {
		return nil, ErrInvalidPickupID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	pickup, err := s.pickupRepo.GetByID(ctx, pickupID)
	if err != nil {
		return nil, err
	}
	if pickup.Status != domain.PickupStatusApproved {
		return nil, ErrPickupNotApproved
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireDriverLock(ctx, driverID, driverLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrDriverNotAvailable
		}
		defer s.lockStore.ReleaseDriverLock(ctx, driverID)
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.Status != domain.DriverStatusAvailable {
		return nil, ErrDriverNotAvailable
	}

	if err := s.driverRepo.UpdateStatus(ctx, driverID, domain.DriverStatusBusy); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pickup.DriverID = driverID
	pickup.Status = domain.PickupStatusAssigned
	pickup.StatusHistory = append(pickup.StatusHistory, domain.StatusChange{
		Status: domain.PickupStatusAssigned,
		At:     now,
		By:     assignedBy,
	})
	pickup.UpdatedAt = now

	if err := s.pickupRepo.Update(ctx, pickup); err != nil {
		// Roll the driver back so a failed write doesn't strand them Busy.
		_ = s.driverRepo.UpdateStatus(ctx, driverID, domain.DriverStatusAvailable)
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidatePickup(ctx, pickup.ID)
	}
	if s.notifier != nil {
		_ = s.notifier.NotifyDriverAssigned(ctx, pickup, driver)
	}

	return pickup, nil
}

// DriverCandidate is a nearby available driver, closest first.
type DriverCandidate struct {
	Driver     *domain.Driver
	DistanceKm float64
}

// NearbyDrivers returns available drivers near a pickup's location, sorted
// by distance from the pickup point.
func (s *AssignmentService) NearbyDrivers(ctx context.Context, pickupID string, radiusKm float64) ([]DriverCandidate, error) {
	if pickupID == "" {
		return nil, ErrInvalidPickupID
	}
	if radiusKm <= 0 {
		radiusKm = defaultSuggestRadiusKm
	}

	pickup, err := s.pickupRepo.GetByID(ctx, pickupID)
	if err != nil {
		return nil, err
	}

	locations, err := s.locationStore.FindNearbyDrivers(ctx, pickup.Location.Lat, pickup.Location.Lng, radiusKm)
	if err != nil {
		return nil, err
	}

	var candidates []DriverCandidate
	for _, loc := range locations {
		driver, err := s.driverRepo.GetByID(ctx, loc.DriverID)
		if err != nil {
			// Stale geo entry; skip it.
			continue
		}
		if driver.Status != domain.DriverStatusAvailable {
			continue
		}
		candidates = append(candidates, DriverCandidate{
			Driver:     driver,
			DistanceKm: loc.DistanceKm,
		})
	}

	return candidates, nil
}
