package service

import (
	"context"

	"ecoport/internal/domain"
	redisstore "ecoport/internal/redis"
	"ecoport/internal/repository"
)

// StatsService produces the admin dashboard counters.
type StatsService struct {
	pickupRepo repository.PickupRepository
	cacheStore *redisstore.CacheStore
}

// NewStatsService creates a new StatsService.
func NewStatsService(pickupRepo repository.PickupRepository, cacheStore *redisstore.CacheStore) *StatsService {
	return &StatsService{
		pickupRepo: pickupRepo,
		cacheStore: cacheStore,
	}
}

// Stats are pickup counts by status.
type Stats struct {
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Assigned  int `json:"assigned"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// GetStats returns pickup counts by status, served from the Redis cache when
// fresh enough.
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	if s.cacheStore != nil {
		if cached, err := s.cacheStore.GetStats(ctx); err == nil && cached != nil {
			return &Stats{
				Pending:   cached["pending"],
				Approved:  cached["approved"],
				Assigned:  cached["assigned"],
				Completed: cached["completed"],
				Total:     cached["total"],
			}, nil
		}
	}

	counts, err := s.pickupRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Pending:   counts[domain.PickupStatusPending],
		Approved:  counts[domain.PickupStatusApproved],
		Assigned:  counts[domain.PickupStatusAssigned],
		Completed: counts[domain.PickupStatusCompleted],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Assigned + stats.Completed

	if s.cacheStore != nil {
		_ = s.cacheStore.SetStats(ctx, map[string]int{
			"pending":   stats.Pending,
			"approved":  stats.Approved,
			"assigned":  stats.Assigned,
			"completed": stats.Completed,
			"total":     stats.Total,
		})
	}

	return stats, nil
}
