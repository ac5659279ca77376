package tests

import (
	"context"
	"errors"
	"testing"

	"ecoport/internal/domain"
	"ecoport/internal/service"
)

func TestCreateRating_Success(t *testing.T) {
	ratingRepo := NewMockRatingRepository()
	pickupRepo := NewMockPickupRepository()
	pickupRepo.AddPickup(testPickup("pickup-1", domain.PickupStatusCompleted))

	svc := service.NewRatingService(ratingRepo, pickupRepo)

	rating, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
		PickupID: "pickup-1",
		Stars:    4,
		Feedback: "On time, friendly driver",
	})
	if err != nil {
		t.Fatalf("CreateRating failed: %v", err)
	}

	if rating.Stars != 4 {
		t.Errorf("Expected 4 stars, got %d", rating.Stars)
	}
	if rating.PickupID != "pickup-1" {
		t.Errorf("Expected pickup-1, got %s", rating.PickupID)
	}
}

func TestCreateRating_StarsOutOfRange(t *testing.T) {
	pickupRepo := NewMockPickupRepository()
	pickupRepo.AddPickup(testPickup("pickup-1", domain.PickupStatusCompleted))
	svc := service.NewRatingService(NewMockRatingRepository(), pickupRepo)

	for _, stars := range []int{0, -1, 6} {
		_, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
			PickupID: "pickup-1",
			Stars:    stars,
		})
		if !errors.Is(err, service.ErrInvalidRatingStars) {
			t.Errorf("stars=%d: expected ErrInvalidRatingStars, got %v", stars, err)
		}
	}
}

func TestCreateRating_PickupNotCompleted(t *testing.T) {
	for _, status := range []domain.PickupStatus{
		domain.PickupStatusPending,
		domain.PickupStatusApproved,
		domain.PickupStatusAssigned,
	} {
		t.Run(string(status), func(t *testing.T) {
			pickupRepo := NewMockPickupRepository()
			pickupRepo.AddPickup(testPickup("pickup-1", status))
			svc := service.NewRatingService(NewMockRatingRepository(), pickupRepo)

			_, err := svc.CreateRating(context.Background(), service.CreateRatingRequest{
				PickupID: "pickup-1",
				Stars:    5,
			})
			if !errors.Is(err, service.ErrPickupNotCompleted) {
				t.Errorf("Expected ErrPickupNotCompleted, got %v", err)
			}
		})
	}
}

func TestCreateRating_OnlyOnce(t *testing.T) {
	ratingRepo := NewMockRatingRepository()
	pickupRepo := NewMockPickupRepository()
	pickupRepo.AddPickup(testPickup("pickup-1", domain.PickupStatusCompleted))

	svc := service.NewRatingService(ratingRepo, pickupRepo)

	req := service.CreateRatingRequest{PickupID: "pickup-1", Stars: 5}
	if _, err := svc.CreateRating(context.Background(), req); err != nil {
		t.Fatalf("First rating failed: %v", err)
	}

	_, err := svc.CreateRating(context.Background(), req)
	if !errors.Is(err, service.ErrAlreadyRated) {
		t.Fatalf("Expected ErrAlreadyRated, got %v", err)
	}
}
