package repository

import (
	"context"

	"ecoport/internal/domain"
)

// RatingRepository defines the persistence operations for ratings.
type RatingRepository interface {
	// Create persists a new rating. Returns ErrDuplicate if the pickup has
	// already been rated.
	Create(ctx context.Context, rating *domain.Rating) error

	// GetByPickupID retrieves the rating for a pickup.
	GetByPickupID(ctx context.Context, pickupID string) (*domain.Rating, error)
}
