package tests

import (
	"context"
	"errors"
	"testing"

	"ecoport/internal/domain"
	"ecoport/internal/service"
)

func statusPtr(s domain.PickupStatus) *domain.PickupStatus { return &s }

func TestUpdatePickup_ApprovePending(t *testing.T) {
	pickupRepo := NewMockPickupRepository()
	pickupRepo.AddPickup(testPickup("pickup-1", domain.PickupStatusPending))
	svc := newPickupService(pickupRepo, NewMockDriverRepository())

	pickup, err := svc.UpdatePickup(context.Background(), service.UpdatePickupRequest{
		PickupID:  "pickup-1",
		UpdatedBy: "admin",
		Status:    statusPtr(domain.PickupStatusApproved),
	})
	if err != nil {
		t.Fatalf("UpdatePickup failed: %v", err)
	}

	if pickup.Status != domain.PickupStatusApproved {
		t.Errorf("Expected status %s, got %s", domain.PickupStatusApproved, pickup.Status)
	}
	if len(pickup.StatusHistory) != 2 {
		t.Fatalf("Expected 2 status history entries, got %d", len(pickup.StatusHistory))
	}
	last := pickup.StatusHistory[1]
	if last.Status != domain.PickupStatusApproved || last.By != "admin" {
		t.Errorf("Unexpected history entry: %+v", last)
	}
}

func TestUpdatePickup_InvalidTransition(t *testing.T) {
	tests := []struct {
		name string
		from domain.PickupStatus
		to   domain.PickupStatus
	}{
		{"pending to assigned", domain.PickupStatusPending, domain.PickupStatusAssigned},
		{"pending to completed", domain.PickupStatusPending, domain.PickupStatusCompleted},
		{"approved to completed", domain.PickupStatusApproved, domain.PickupStatusCompleted},
		{"completed to pending", domain.PickupStatusCompleted, domain.PickupStatusPending},
		{"assigned to approved", domain.PickupStatusAssigned, domain.PickupStatusApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pickupRepo := NewMockPickupRepository()
			pickupRepo.AddPickup(testPickup("pickup-1", tt.from))
			svc := newPickupService(pickupRepo, NewMockDriverRepository())

			_, err := svc.UpdatePickup(context.Background(), service.UpdatePickupRequest{
				PickupID:  "pickup-1",
				UpdatedBy: "admin",
				Status:    statusPtr(tt.to),
			})
			if !errors.Is(err, service.ErrInvalidStatusTransition) {
				t.Errorf("Expected ErrInvalidStatusTransition, got %v", err)
			}
		})
	}
}

func TestUpdatePickup_ActualCostRecordsPriceHistory(t *testing.T) {
	pickupRepo := NewMockPickupRepository()
	pickupRepo.AddPickup(testPickup("pickup-1", domain.PickupStatusAssigned))
	svc := newPickupService(pickupRepo, NewMockDriverRepository())

	cost := 75.50
	pickup, err := svc.UpdatePickup(context.Background(), service.UpdatePickupRequest{
		PickupID:   "pickup-1",
		UpdatedBy:  "admin",
		ActualCost: &cost,
	})
	if err != nil {
		t.Fatalf("UpdatePickup failed: %v", err)
	}

	if pickup.ActualCost != 75.50 {
		t.Errorf("Expected actual cost 75.50, got %.2f", pickup.ActualCost)
	}
	if len(pickup.PriceHistory) != 1 {
		t.Fatalf("Expected 1 price history entry, got %d", len(pickup.PriceHistory))
	}
	if pickup.PriceHistory[0].ActualCost != 75.50 || pickup.PriceHistory[0].By != "admin" {
		t.Errorf("Unexpected price history entry: %+v", pickup.PriceHistory[0])
	}
}

func TestUpdatePickup_CompletionFreesDriver(t *testing.T) {
	pickupRepo := NewMockPickupRepository()
	driverRepo := NewMockDriverRepository()

	pickup := testPickup("pickup-1", domain.PickupStatusAssigned)
	pickup.DriverID = "driver-1"
	pickupRepo.AddPickup(pickup)
	driverRepo.AddDriver(testDriver("driver-1", domain.DriverStatusBusy))

	svc := newPickupService(pickupRepo, driverRepo)

	_, err := svc.UpdatePickup(context.Background(), service.UpdatePickupRequest{
		PickupID:  "pickup-1",
		UpdatedBy: "admin",
		Status:    statusPtr(domain.PickupStatusCompleted),
	})
	if err != nil {
		t.Fatalf("UpdatePickup failed: %v", err)
	}

	driver, err := driverRepo.GetByID(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if driver.Status != domain.DriverStatusAvailable {
		t.Errorf("Expected driver to be freed to %s, got %s", domain.DriverStatusAvailable, driver.Status)
	}
}

func TestUpdatePickup_NotFound(t *testing.T) {
	svc := newPickupService(NewMockPickupRepository(), NewMockDriverRepository())

	_, err := svc.UpdatePickup(context.Background(), service.UpdatePickupRequest{
		PickupID:  "missing",
		UpdatedBy: "admin",
		Status:    statusPtr(domain.PickupStatusApproved),
	})
	if err == nil {
		t.Fatal("Expected error for unknown pickup")
	}
}
