package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecoport/internal/domain"
	"ecoport/internal/redis"
	"ecoport/internal/service"
)

func newAssignmentService(
	pickupRepo *MockPickupRepository,
	driverRepo *MockDriverRepository,
	locationStore *MockLocationStore,
	lockStore *MockLockStore,
) *service.AssignmentService {
	return service.NewAssignmentService(pickupRepo, driverRepo, locationStore, lockStore, nil, nil)
}

func TestAssignDriver_Success(t *testing.T) {
	pickupRepo := NewMockPickupRepository()
	driverRepo := NewMockDriverRepository()
	lockStore := NewMockLockStore()

	pickupRepo.AddPickup(testPickup("pickup-1", domain.PickupStatusApproved))
	driverRepo.AddDriver(testDriver("driver-1", domain.DriverStatusAvailable))

	svc := newAssignmentService(pickupRepo, driverRepo, NewMockLocationStore(), lockStore)

	pickup, err := svc.AssignDriver(context.Background(), "pickup-1", "driver-1", "admin")
	if err != nil {
		t.Fatalf("AssignDriver failed: %v", err)
	}

	if pickup.Status != domain.PickupStatusAssigned {
		t.Errorf("Expected status %s, got %s", domain.PickupStatusAssigned, pickup.Status)
	}
	if pickup.DriverID != "driver-1" {
		t.Errorf("Expected driver-1 assigned, got %q", pickup.DriverID)
	}

	driver, _ := driverRepo.GetByID(context.Background(), "driver-1")
	if driver.Status != domain.DriverStatusBusy {
		t.Errorf("Expected driver to be %s, got %s", domain.DriverStatusBusy, driver.Status)
	}

	// The assignment lock is released once the write lands.
	acquired, err := lockStore.AcquireDriverLock(context.Background(), "driver-1", 10*time.Second)
	if err != nil || !acquired {
		t.Errorf("Expected lock to be released after assignment, acquired=%v err=%v", acquired, err)
	}
}

func TestAssignDriver_PickupNotApproved(t *testing.T) {
	for _, status := range []domain.PickupStatus{
		domain.PickupStatusPending,
		domain.PickupStatusAssigned,
		domain.PickupStatusCompleted,
	} {
		t.Run(string(status), func(t *testing.T) {
			pickupRepo := NewMockPickupRepository()
			driverRepo := NewMockDriverRepository()
			pickupRepo.AddPickup(testPickup("pickup-1", status))
			driverRepo.AddDriver(testDriver("driver-1", domain.DriverStatusAvailable))

			svc := newAssignmentService(pickupRepo, driverRepo, NewMockLocationStore(), NewMockLockStore())

			_, err := svc.AssignDriver(context.Background(), "pickup-1", "driver-1", "admin")
			if !errors.Is(err, service.ErrPickupNotApproved) {
				t.Errorf("Expected ErrPickupNotApproved, got %v", err)
			}
		})
	}
}

func TestAssignDriver_LockContention(t *testing.T) {
	pickupRepo := NewMockPickupRepository()
	driverRepo := NewMockDriverRepository()
	lockStore := NewMockLockStore()

	pickupRepo.AddPickup(testPickup("pickup-1", domain.PickupStatusApproved))
	driverRepo.AddDriver(testDriver("driver-1", domain.DriverStatusAvailable))
	lockStore.HoldLock("driver-1")

	svc := newAssignmentService(pickupRepo, driverRepo, NewMockLocationStore(), lockStore)

	_, err := svc.AssignDriver(context.Background(), "pickup-1", "driver-1", "admin")
	if !errors.Is(err, service.ErrDriverNotAvailable) {
		t.Fatalf("Expected ErrDriverNotAvailable under lock contention, got %v", err)
	}
	if driverRepo.UpdateStatusCallCount != 0 {
		t.Errorf("Expected no driver status change, got %d calls", driverRepo.UpdateStatusCallCount)
	}
}

func TestAssignDriver_DriverNotAvailable(t *testing.T) {
	for _, status := range []domain.DriverStatus{domain.DriverStatusBusy, domain.DriverStatusOffline} {
		t.Run(string(status), func(t *testing.T) {
			pickupRepo := NewMockPickupRepository()
			driverRepo := NewMockDriverRepository()
			pickupRepo.AddPickup(testPickup("pickup-1", domain.PickupStatusApproved))
			driverRepo.AddDriver(testDriver("driver-1", status))

			svc := newAssignmentService(pickupRepo, driverRepo, NewMockLocationStore(), NewMockLockStore())

			_, err := svc.AssignDriver(context.Background(), "pickup-1", "driver-1", "admin")
			if !errors.Is(err, service.ErrDriverNotAvailable) {
				t.Errorf("Expected ErrDriverNotAvailable, got %v", err)
			}
		})
	}
}

func TestAssignDriver_RollbackOnWriteFailure(t *testing.T) {
	pickupRepo := NewMockPickupRepository()
	driverRepo := NewMockDriverRepository()

	pickupRepo.AddPickup(testPickup("pickup-1", domain.PickupStatusApproved))
	driverRepo.AddDriver(testDriver("driver-1", domain.DriverStatusAvailable))
	pickupRepo.UpdateError = errors.New("write failed")

	svc := newAssignmentService(pickupRepo, driverRepo, NewMockLocationStore(), NewMockLockStore())

	_, err := svc.AssignDriver(context.Background(), "pickup-1", "driver-1", "admin")
	if err == nil {
		t.Fatal("Expected error when pickup write fails")
	}

	driver, _ := driverRepo.GetByID(context.Background(), "driver-1")
	if driver.Status != domain.DriverStatusAvailable {
		t.Errorf("Expected driver rolled back to %s, got %s", domain.DriverStatusAvailable, driver.Status)
	}
}

func TestNearbyDrivers_FiltersUnavailable(t *testing.T) {
	pickupRepo := NewMockPickupRepository()
	driverRepo := NewMockDriverRepository()
	locationStore := NewMockLocationStore()

	pickupRepo.AddPickup(testPickup("pickup-1", domain.PickupStatusApproved))
	driverRepo.AddDriver(testDriver("driver-1", domain.DriverStatusAvailable))
	driverRepo.AddDriver(testDriver("driver-2", domain.DriverStatusBusy))
	locationStore.SetLocations([]redis.DriverLocation{
		{DriverID: "driver-1", Lat: nearbyPoint.Lat, Lng: nearbyPoint.Lng, DistanceKm: 0.4},
		{DriverID: "driver-2", Lat: nearbyPoint.Lat, Lng: nearbyPoint.Lng, DistanceKm: 0.2},
		{DriverID: "driver-gone", Lat: nearbyPoint.Lat, Lng: nearbyPoint.Lng, DistanceKm: 0.1},
	})

	svc := newAssignmentService(pickupRepo, driverRepo, locationStore, NewMockLockStore())

	candidates, err := svc.NearbyDrivers(context.Background(), "pickup-1", 5)
	if err != nil {
		t.Fatalf("NearbyDrivers failed: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Driver.ID != "driver-1" {
		t.Errorf("Expected driver-1, got %s", candidates[0].Driver.ID)
	}
	if candidates[0].DistanceKm != 0.4 {
		t.Errorf("Expected distance 0.4, got %.2f", candidates[0].DistanceKm)
	}
}
