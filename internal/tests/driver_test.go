package tests

import (
	"context"
	"errors"
	"testing"

	"ecoport/internal/domain"
	"ecoport/internal/pricing"
	"ecoport/internal/redis"
	"ecoport/internal/service"
)

func TestCreateDriver_Success(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockLocationStore())

	driver, err := svc.CreateDriver(context.Background(), service.CreateDriverRequest{
		Name:          "Ravi Sharma",
		Phone:         "+91-9800000001",
		VehicleType:   "pickup-van",
		VehicleNumber: "WB-73-1234",
	})
	if err != nil {
		t.Fatalf("CreateDriver failed: %v", err)
	}

	if driver.ID == "" {
		t.Error("Expected driver to be assigned an ID")
	}
	if driver.Status != domain.DriverStatusAvailable {
		t.Errorf("Expected initial status %s, got %s", domain.DriverStatusAvailable, driver.Status)
	}
}

func TestCreateDriver_MissingFields(t *testing.T) {
	svc := service.NewDriverService(NewMockDriverRepository(), NewMockLocationStore())

	_, err := svc.CreateDriver(context.Background(), service.CreateDriverRequest{
		Name:  "Ravi Sharma",
		Phone: "+91-9800000001",
	})
	if !errors.Is(err, service.ErrMissingRequiredField) {
		t.Fatalf("Expected ErrMissingRequiredField, got %v", err)
	}
}

func TestUpdateDriverStatus_OfflineRemovesFromGeoIndex(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	locationStore := NewMockLocationStore()
	driverRepo.AddDriver(testDriver("driver-1", domain.DriverStatusAvailable))
	locationStore.SetLocations([]redis.DriverLocation{
		{DriverID: "driver-1", Lat: nearbyPoint.Lat, Lng: nearbyPoint.Lng},
	})

	svc := service.NewDriverService(driverRepo, locationStore)

	driver, err := svc.UpdateStatus(context.Background(), "driver-1", domain.DriverStatusOffline)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if driver.Status != domain.DriverStatusOffline {
		t.Errorf("Expected status %s, got %s", domain.DriverStatusOffline, driver.Status)
	}

	locations, _ := locationStore.FindNearbyDrivers(context.Background(), nearbyPoint.Lat, nearbyPoint.Lng, 10)
	if len(locations) != 0 {
		t.Errorf("Expected offline driver removed from geo index, found %d entries", len(locations))
	}
}

func TestUpdateDriverLocation(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	locationStore := NewMockLocationStore()
	driverRepo.AddDriver(testDriver("driver-1", domain.DriverStatusAvailable))

	svc := service.NewDriverService(driverRepo, locationStore)

	if err := svc.UpdateLocation(context.Background(), "driver-1", nearbyPoint); err != nil {
		t.Fatalf("UpdateLocation failed: %v", err)
	}

	driver, _ := driverRepo.GetByID(context.Background(), "driver-1")
	if driver.Location == nil || driver.Location.Lat != nearbyPoint.Lat || driver.Location.Lng != nearbyPoint.Lng {
		t.Errorf("Expected persisted location %+v, got %+v", nearbyPoint, driver.Location)
	}

	locations, _ := locationStore.FindNearbyDrivers(context.Background(), nearbyPoint.Lat, nearbyPoint.Lng, 10)
	if len(locations) != 1 || locations[0].DriverID != "driver-1" {
		t.Errorf("Expected driver-1 in geo index, got %+v", locations)
	}
}

func TestUpdateDriverLocation_InvalidCoordinates(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(testDriver("driver-1", domain.DriverStatusAvailable))
	svc := service.NewDriverService(driverRepo, NewMockLocationStore())

	err := svc.UpdateLocation(context.Background(), "driver-1", pricing.GeoPoint{Lat: 26.7, Lng: 181})
	if !errors.Is(err, service.ErrInvalidLocation) {
		t.Fatalf("Expected ErrInvalidLocation, got %v", err)
	}
}
