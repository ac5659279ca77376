package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ecoport/internal/domain"
	"ecoport/internal/pricing"
	redisstore "ecoport/internal/redis"
	"ecoport/internal/repository"
)

// maxWasteImageLen caps the base64-encoded waste photo at roughly 2MB of
// decoded image data.
const maxWasteImageLen = 2 * 1024 * 1024 * 4 / 3

// PickupService handles pickup request operations. It owns the authoritative
// call site of the pricing engine: whatever a client previewed, the values
// persisted here are the ones that count.
type PickupService struct {
	pickupRepo repository.PickupRepository
	driverRepo repository.DriverRepository
	engine     *pricing.Engine
	cacheStore *redisstore.CacheStore
	notifier   *NotificationService
}

// NewPickupService creates a new PickupService.
func NewPickupService(
	pickupRepo repository.PickupRepository,
	driverRepo repository.DriverRepository,
	engine *pricing.Engine,
	cacheStore *redisstore.CacheStore,
	notifier *NotificationService,
) *PickupService {
	return &PickupService{
		pickupRepo: pickupRepo,
		driverRepo: driverRepo,
		engine:     engine,
		cacheStore: cacheStore,
		notifier:   notifier,
	}
}

// CreatePickupRequest contains the parameters for creating a pickup.
type CreatePickupRequest struct {
	Location      pricing.GeoPoint
	Address       string
	WasteImage    string
	WasteType     pricing.WasteType
	Quantity      pricing.Quantity
	UserContact   string
	Notes         string
	PaymentMethod domain.PaymentMethod
}

// CreatePickup quotes the request server-side and persists it. Returns
// ErrOutsideServiceArea when the location is beyond the serviceable radius.
func (s *PickupService) CreatePickup(ctx context.Context, req CreatePickupRequest) (*domain.PickupRequest, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	quote, err := s.engine.Quote(req.Location, req.WasteType, req.Quantity)
	if err != nil {
		return nil, ErrInvalidLocation
	}
	if !quote.InServiceArea {
		return nil, ErrOutsideServiceArea
	}

	now := time.Now().UTC()
	pickup := &domain.PickupRequest{
		ID:            uuid.New().String(),
		Location:      req.Location,
		Address:       req.Address,
		WasteImage:    req.WasteImage,
		WasteType:     req.WasteType,
		Quantity:      req.Quantity,
		EstimatedCost: *quote.EstimatedCost,
		DistanceKm:    quote.DistanceKm,
		Status:        domain.PickupStatusPending,
		UserContact:   req.UserContact,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
		StatusHistory: []domain.StatusChange{
			{Status: domain.PickupStatusPending, At: now, By: "user"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.pickupRepo.Create(ctx, pickup); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetPickup(ctx, cachedPickup(pickup))
	}
	if s.notifier != nil {
		_ = s.notifier.NotifyPickupCreated(ctx, pickup)
	}

	return pickup, nil
}

// GetPickup retrieves a pickup request by ID.
func (s *PickupService) GetPickup(ctx context.Context, pickupID string) (*domain.PickupRequest, error) {
	if pickupID == "" {
		return nil, ErrInvalidPickupID
	}

	return s.pickupRepo.GetByID(ctx, pickupID)
}

// ListPickups retrieves pickup requests, optionally filtered by status.
func (s *PickupService) ListPickups(ctx context.Context, filter repository.PickupFilter) ([]*domain.PickupRequest, error) {
	return s.pickupRepo.List(ctx, filter)
}

// UpdatePickupRequest contains the admin-editable fields of a pickup.
// Nil pointers mean "leave unchanged".
type UpdatePickupRequest struct {
	PickupID      string
	UpdatedBy     string
	Status        *domain.PickupStatus
	ActualCost    *float64
	Notes         *string
	PaymentStatus *domain.PaymentStatus
}

// UpdatePickup applies an admin update. Status changes must follow the
// pickup lifecycle and are appended to the status history; actual-cost
// changes are appended to the price history.
func (s *PickupService) UpdatePickup(ctx context.Context, req UpdatePickupRequest) (*domain.PickupRequest, error) {
	if req.PickupID == "" {
		return nil, ErrInvalidPickupID
	}

	pickup, err := s.pickupRepo.GetByID(ctx, req.PickupID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if req.Status != nil && *req.Status != pickup.Status {
		if !pickup.CanTransitionTo(*req.Status) {
			return nil, ErrInvalidStatusTransition
		}
		pickup.Status = *req.Status
		pickup.StatusHistory = append(pickup.StatusHistory, domain.StatusChange{
			Status: *req.Status,
			At:     now,
			By:     req.UpdatedBy,
		})
	}

	if req.ActualCost != nil {
		pickup.ActualCost = *req.ActualCost
		pickup.PriceHistory = append(pickup.PriceHistory, domain.PriceChange{
			ActualCost: *req.ActualCost,
			At:         now,
			By:         req.UpdatedBy,
		})
	}

	if req.Notes != nil {
		pickup.Notes = *req.Notes
	}
	if req.PaymentStatus != nil {
		pickup.PaymentStatus = *req.PaymentStatus
	}

	pickup.UpdatedAt = now

	if err := s.pickupRepo.Update(ctx, pickup); err != nil {
		return nil, err
	}

	// A completed pickup frees its driver for the next assignment.
	if req.Status != nil && *req.Status == domain.PickupStatusCompleted && pickup.DriverID != "" {
		if err := s.driverRepo.UpdateStatus(ctx, pickup.DriverID, domain.DriverStatusAvailable); err != nil && err != repository.ErrNotFound {
			return nil, err
		}
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidatePickup(ctx, pickup.ID)
	}
	if s.notifier != nil && req.Status != nil {
		_ = s.notifier.NotifyStatusChanged(ctx, pickup)
	}

	return pickup, nil
}

func (s *PickupService) validateCreateRequest(req CreatePickupRequest) error {
	if err := req.Location.Validate(); err != nil {
		return ErrInvalidLocation
	}
	if req.WasteImage == "" {
		return ErrMissingWasteImage
	}
	if len(req.WasteImage) > maxWasteImageLen {
		return ErrImageTooLarge
	}
	if req.WasteType == "" || req.Quantity == "" {
		return ErrMissingRequiredField
	}
	if _, err := ValidatePaymentMethod(string(req.PaymentMethod)); err != nil {
		return err
	}
	return nil
}

// ValidatePaymentMethod validates a payment method string. Empty is allowed;
// the method can be chosen later.
func ValidatePaymentMethod(method string) (domain.PaymentMethod, error) {
	switch domain.PaymentMethod(method) {
	case domain.PaymentMethodCOD, domain.PaymentMethodUPI, domain.PaymentMethodInvoice, "":
		return domain.PaymentMethod(method), nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

func cachedPickup(p *domain.PickupRequest) *redisstore.CachedPickup {
	return &redisstore.CachedPickup{
		ID:            p.ID,
		Status:        string(p.Status),
		WasteType:     string(p.WasteType),
		Quantity:      string(p.Quantity),
		DistanceKm:    p.DistanceKm,
		EstimatedCost: p.EstimatedCost,
		DriverID:      p.DriverID,
	}
}
