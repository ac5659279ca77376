package tests

import (
	"context"
	"errors"
	"math"
	"testing"

	"ecoport/internal/domain"
	"ecoport/internal/pricing"
	"ecoport/internal/service"
)

func newPickupService(pickupRepo *MockPickupRepository, driverRepo *MockDriverRepository) *service.PickupService {
	engine := pricing.NewEngine(pricing.DefaultConfig())
	return service.NewPickupService(pickupRepo, driverRepo, engine, nil, nil)
}

func TestCreatePickup_InServiceArea(t *testing.T) {
	pickupRepo := NewMockPickupRepository()
	svc := newPickupService(pickupRepo, NewMockDriverRepository())

	pickup, err := svc.CreatePickup(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("CreatePickup failed: %v", err)
	}

	if pickup.ID == "" {
		t.Error("Expected pickup to be assigned an ID")
	}
	if pickup.Status != domain.PickupStatusPending {
		t.Errorf("Expected status %s, got %s", domain.PickupStatusPending, pickup.Status)
	}
	if len(pickup.StatusHistory) != 1 || pickup.StatusHistory[0].Status != domain.PickupStatusPending {
		t.Errorf("Expected single Pending status history entry, got %+v", pickup.StatusHistory)
	}
	if pickup.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("Expected payment status %s, got %s", domain.PaymentStatusPending, pickup.PaymentStatus)
	}
	if pickupRepo.CreateCallCount != 1 {
		t.Errorf("Expected 1 repository create call, got %d", pickupRepo.CreateCallCount)
	}

	// The persisted quote must match what the engine returns for the same
	// inputs, to the cent.
	engine := pricing.NewEngine(pricing.DefaultConfig())
	quote, err := engine.Quote(nearbyPoint, pricing.WasteOrganic, pricing.QuantitySmall)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if math.Abs(pickup.EstimatedCost-*quote.EstimatedCost) > 0.001 {
		t.Errorf("Expected estimated cost %.2f, got %.2f", *quote.EstimatedCost, pickup.EstimatedCost)
	}
	if math.Abs(pickup.DistanceKm-quote.DistanceKm) > 0.001 {
		t.Errorf("Expected distance %.2f, got %.2f", quote.DistanceKm, pickup.DistanceKm)
	}
}

func TestCreatePickup_OutsideServiceArea(t *testing.T) {
	pickupRepo := NewMockPickupRepository()
	svc := newPickupService(pickupRepo, NewMockDriverRepository())

	req := validCreateRequest()
	req.Location = farPoint

	_, err := svc.CreatePickup(context.Background(), req)
	if !errors.Is(err, service.ErrOutsideServiceArea) {
		t.Fatalf("Expected ErrOutsideServiceArea, got %v", err)
	}
	if pickupRepo.CreateCallCount != 0 {
		t.Errorf("Expected no repository create call, got %d", pickupRepo.CreateCallCount)
	}
}

func TestCreatePickup_Validation(t *testing.T) {
	svc := newPickupService(NewMockPickupRepository(), NewMockDriverRepository())

	tests := []struct {
		name    string
		mutate  func(*service.CreatePickupRequest)
		wantErr error
	}{
		{
			name:    "invalid latitude",
			mutate:  func(r *service.CreatePickupRequest) { r.Location.Lat = 91 },
			wantErr: service.ErrInvalidLocation,
		},
		{
			name:    "missing waste image",
			mutate:  func(r *service.CreatePickupRequest) { r.WasteImage = "" },
			wantErr: service.ErrMissingWasteImage,
		},
		{
			name:    "oversized waste image",
			mutate:  func(r *service.CreatePickupRequest) { r.WasteImage = oversizedImage() },
			wantErr: service.ErrImageTooLarge,
		},
		{
			name:    "missing waste type",
			mutate:  func(r *service.CreatePickupRequest) { r.WasteType = "" },
			wantErr: service.ErrMissingRequiredField,
		},
		{
			name:    "missing quantity",
			mutate:  func(r *service.CreatePickupRequest) { r.Quantity = "" },
			wantErr: service.ErrMissingRequiredField,
		},
		{
			name:    "bad payment method",
			mutate:  func(r *service.CreatePickupRequest) { r.PaymentMethod = "Barter" },
			wantErr: service.ErrInvalidPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			_, err := svc.CreatePickup(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreatePickup_UnknownWasteTypeStillPriced(t *testing.T) {
	// A client ahead of (or behind) the server's category list still gets a
	// pickup; the multiplier falls back to 1.0.
	pickupRepo := NewMockPickupRepository()
	svc := newPickupService(pickupRepo, NewMockDriverRepository())

	req := validCreateRequest()
	req.WasteType = "Textile"

	pickup, err := svc.CreatePickup(context.Background(), req)
	if err != nil {
		t.Fatalf("CreatePickup failed: %v", err)
	}

	engine := pricing.NewEngine(pricing.DefaultConfig())
	baseline, err := engine.Quote(nearbyPoint, pricing.WasteOrganic, pricing.QuantitySmall)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if math.Abs(pickup.EstimatedCost-*baseline.EstimatedCost) > 0.001 {
		t.Errorf("Expected fallback cost %.2f, got %.2f", *baseline.EstimatedCost, pickup.EstimatedCost)
	}
}

func TestCreatePickup_RepositoryError(t *testing.T) {
	pickupRepo := NewMockPickupRepository()
	pickupRepo.CreateError = errors.New("connection refused")
	svc := newPickupService(pickupRepo, NewMockDriverRepository())

	_, err := svc.CreatePickup(context.Background(), validCreateRequest())
	if err == nil {
		t.Fatal("Expected error when repository create fails")
	}
}
