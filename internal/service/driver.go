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

// DriverService handles driver operations.
type DriverService struct {
	driverRepo    repository.DriverRepository
	locationStore redisstore.LocationStoreInterface
}

// NewDriverService creates a new DriverService.
func NewDriverService(
	driverRepo repository.DriverRepository,
	locationStore redisstore.LocationStoreInterface,
) *DriverService {
	return &DriverService{
		driverRepo:    driverRepo,
		locationStore: locationStore,
	}
}

// CreateDriverRequest contains the parameters for registering a driver.
type CreateDriverRequest struct {
	Name          string
	Phone         string
	VehicleType   string
	VehicleNumber string
}

// CreateDriver registers a new driver, initially Available.
func (s *DriverService) CreateDriver(ctx context.Context, req CreateDriverRequest) (*domain.Driver, error) {
	if req.Name == "" || req.Phone == "" || req.VehicleType == "" || req.VehicleNumber == "" {
		return nil, ErrMissingRequiredField
	}

	driver := &domain.Driver{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Phone:         req.Phone,
		VehicleType:   req.VehicleType,
		VehicleNumber: req.VehicleNumber,
		Status:        domain.DriverStatusAvailable,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}

	return driver, nil
}

// GetDriver retrieves a driver by ID.
func (s *DriverService) GetDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	return s.driverRepo.GetByID(ctx, driverID)
}

// ListDrivers retrieves drivers, optionally filtered by status.
func (s *DriverService) ListDrivers(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error) {
	return s.driverRepo.List(ctx, status)
}

// UpdateStatus changes a driver's status. Going offline removes the driver
// from the geo index so they are never suggested for assignment.
func (s *DriverService) UpdateStatus(ctx context.Context, driverID string, status domain.DriverStatus) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	if err := s.driverRepo.UpdateStatus(ctx, driverID, status); err != nil {
		return nil, err
	}

	if status == domain.DriverStatusOffline && s.locationStore != nil {
		_ = s.locationStore.RemoveLocation(ctx, driverID)
	}

	return s.driverRepo.GetByID(ctx, driverID)
}

// UpdateLocation records a driver's position in the Redis geo index and the
// durable store.
func (s *DriverService) UpdateLocation(ctx context.Context, driverID string, point pricing.GeoPoint) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}
	if err := point.Validate(); err != nil {
		return ErrInvalidLocation
	}

	if s.locationStore != nil {
		if err := s.locationStore.UpdateLocation(ctx, driverID, point.Lat, point.Lng); err != nil {
			return err
		}
	}

	return s.driverRepo.UpdateLocation(ctx, driverID, point.Lat, point.Lng)
}
