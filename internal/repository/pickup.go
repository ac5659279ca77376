package repository

import (
	"context"

	"ecoport/internal/domain"
)

// PickupFilter narrows the result of listing pickups.
type PickupFilter struct {
	Status domain.PickupStatus // empty means all statuses
	Limit  int
	Offset int
}

// PickupRepository defines the persistence operations for pickup requests.
type PickupRepository interface {
	// Create persists a new pickup request.
	Create(ctx context.Context, pickup *domain.PickupRequest) error

	// GetByID retrieves a pickup request by ID.
	GetByID(ctx context.Context, id string) (*domain.PickupRequest, error)

	// List retrieves pickup requests matching the filter, newest first.
	List(ctx context.Context, filter PickupFilter) ([]*domain.PickupRequest, error)

	// Update updates an existing pickup request.
	Update(ctx context.Context, pickup *domain.PickupRequest) error

	// CountByStatus returns the number of pickups per status.
	CountByStatus(ctx context.Context) (map[domain.PickupStatus]int, error)
}
