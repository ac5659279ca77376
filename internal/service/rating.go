package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"ecoport/internal/domain"
	"ecoport/internal/repository"
)

// RatingService handles pickup ratings.
type RatingService struct {
	ratingRepo repository.RatingRepository
	pickupRepo repository.PickupRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(
	ratingRepo repository.RatingRepository,
	pickupRepo repository.PickupRepository,
) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		pickupRepo: pickupRepo,
	}
}

// CreateRatingRequest contains the parameters for rating a pickup.
type CreateRatingRequest struct {
	PickupID string
	Stars    int
	Feedback string
}

// CreateRating records a rating for a completed pickup. Each pickup may be
// rated once.
func (s *RatingService) CreateRating(ctx context.Context, req CreateRatingRequest) (*domain.Rating, error) {
	if req.PickupID == "" {
		return nil, ErrInvalidPickupID
	}
	if req.Stars < 1 || req.Stars > 5 {
		return nil, ErrInvalidRatingStars
	}

	pickup, err := s.pickupRepo.GetByID(ctx, req.PickupID)
	if err != nil {
		return nil, err
	}
	if pickup.Status != domain.PickupStatusCompleted {
		return nil, ErrPickupNotCompleted
	}

	rating := &domain.Rating{
		ID:        uuid.New().String(),
		PickupID:  req.PickupID,
		Stars:     req.Stars,
		Feedback:  req.Feedback,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}

	return rating, nil
}

// GetRating retrieves the rating for a pickup.
func (s *RatingService) GetRating(ctx context.Context, pickupID string) (*domain.Rating, error) {
	if pickupID == "" {
		return nil, ErrInvalidPickupID
	}

	return s.ratingRepo.GetByPickupID(ctx, pickupID)
}
