package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"ecoport/internal/domain"
	"ecoport/internal/repository"
)

// RatingRepository is a PostgreSQL implementation of repository.RatingRepository.
type RatingRepository struct {
	q Querier
}

// NewRatingRepository creates a new PostgreSQL rating repository.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{q: db}
}

// Create persists a new rating. The pickup_id column carries a unique
// constraint, so a second rating for the same pickup maps to ErrDuplicate.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, pickup_id, stars, feedback, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	var feedback sql.NullString
	if rating.Feedback != "" {
		feedback = sql.NullString{String: rating.Feedback, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		rating.ID,
		rating.PickupID,
		rating.Stars,
		feedback,
		rating.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}

	return nil
}

// GetByPickupID retrieves the rating for a pickup.
func (r *RatingRepository) GetByPickupID(ctx context.Context, pickupID string) (*domain.Rating, error) {
	query := `
		SELECT id, pickup_id, stars, feedback, created_at
		FROM ratings WHERE pickup_id = $1
	`

	var rating domain.Rating
	var feedback sql.NullString

	err := r.q.QueryRowContext(ctx, query, pickupID).Scan(
		&rating.ID,
		&rating.PickupID,
		&rating.Stars,
		&feedback,
		&rating.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	rating.Feedback = feedback.String

	return &rating, nil
}
