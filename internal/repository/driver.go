package repository

import (
	"context"

	"ecoport/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create persists a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// List retrieves drivers, optionally filtered by status.
	List(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error)

	// UpdateStatus updates a driver's status.
	UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error

	// UpdateLocation updates a driver's last reported location.
	UpdateLocation(ctx context.Context, id string, lat, lng float64) error
}
