package tests

import (
	"strings"
	"time"

	"ecoport/internal/domain"
	"ecoport/internal/pricing"
	"ecoport/internal/service"
)

var (
	// Depot for the pilot deployment.
	testDepot = pricing.GeoPoint{Lat: 26.7271, Lng: 88.3953}

	// About 1 km east of the depot, well inside the service area.
	nearbyPoint = pricing.GeoPoint{Lat: 26.7271, Lng: 88.4053}

	// About 35 km north of the depot, outside the service area.
	farPoint = pricing.GeoPoint{Lat: 27.0421, Lng: 88.3953}
)

// validCreateRequest returns a pickup creation request that passes all
// validation with the default pricing configuration.
func validCreateRequest() service.CreatePickupRequest {
	return service.CreatePickupRequest{
		Location:    nearbyPoint,
		Address:     "12 Hill Cart Road",
		WasteImage:  "data:image/jpeg;base64,/9j/4AAQSkZJRg==",
		WasteType:   pricing.WasteOrganic,
		Quantity:    pricing.QuantitySmall,
		UserContact: "+91-9800000000",
	}
}

func testPickup(id string, status domain.PickupStatus) *domain.PickupRequest {
	now := time.Now().UTC()
	return &domain.PickupRequest{
		ID:            id,
		Location:      nearbyPoint,
		Address:       "12 Hill Cart Road",
		WasteImage:    "data:image/jpeg;base64,/9j/4AAQSkZJRg==",
		WasteType:     pricing.WasteOrganic,
		Quantity:      pricing.QuantitySmall,
		EstimatedCost: 60.0,
		DistanceKm:    1.0,
		Status:        status,
		UserContact:   "+91-9800000000",
		PaymentStatus: domain.PaymentStatusPending,
		StatusHistory: []domain.StatusChange{
			{Status: domain.PickupStatusPending, At: now, By: "user"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testDriver(id string, status domain.DriverStatus) *domain.Driver {
	return &domain.Driver{
		ID:            id,
		Name:          "Ravi Sharma",
		Phone:         "+91-9800000001",
		VehicleType:   "pickup-van",
		VehicleNumber: "WB-73-1234",
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}
}

// oversizedImage builds a base64 payload just past the encoded 2MB limit.
func oversizedImage() string {
	return strings.Repeat("A", 2*1024*1024*4/3+1)
}
