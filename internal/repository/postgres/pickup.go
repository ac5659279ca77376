package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"ecoport/internal/domain"
	"ecoport/internal/repository"
)

// PickupRepository is a PostgreSQL implementation of repository.PickupRepository.
type PickupRepository struct {
	q Querier
}

// NewPickupRepository creates a new PostgreSQL pickup repository.
func NewPickupRepository(db *sql.DB) *PickupRepository {
	return &PickupRepository{q: db}
}

// NewPickupRepositoryWithTx creates a pickup repository using a transaction.
func NewPickupRepositoryWithTx(tx *sql.Tx) *PickupRepository {
	return &PickupRepository{q: tx}
}

const pickupColumns = `id, latitude, longitude, address, waste_image, waste_type, quantity,
		estimated_cost, actual_cost, distance_km, status, user_contact, notes, driver_id,
		payment_method, payment_status, status_history, price_history, created_at, updated_at`

// Create persists a new pickup request.
func (r *PickupRepository) Create(ctx context.Context, pickup *domain.PickupRequest) error {
	query := `
		INSERT INTO pickups (` + pickupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	statusHistory, err := json.Marshal(pickup.StatusHistory)
	if err != nil {
		return err
	}
	priceHistory, err := json.Marshal(pickup.PriceHistory)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, query,
		pickup.ID,
		pickup.Location.Lat,
		pickup.Location.Lng,
		nullString(pickup.Address),
		pickup.WasteImage,
		pickup.WasteType,
		pickup.Quantity,
		pickup.EstimatedCost,
		nullFloat(pickup.ActualCost),
		pickup.DistanceKm,
		pickup.Status,
		nullString(pickup.UserContact),
		nullString(pickup.Notes),
		nullString(pickup.DriverID),
		nullString(string(pickup.PaymentMethod)),
		pickup.PaymentStatus,
		statusHistory,
		priceHistory,
		pickup.CreatedAt,
		pickup.UpdatedAt,
	)

	return err
}

// GetByID retrieves a pickup request by ID.
func (r *PickupRepository) GetByID(ctx context.Context, id string) (*domain.PickupRequest, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickups WHERE id = $1`

	pickup, err := scanPickup(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return pickup, nil
}

// List retrieves pickup requests matching the filter, newest first.
func (r *PickupRepository) List(ctx context.Context, filter repository.PickupFilter) ([]*domain.PickupRequest, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + pickupColumns + ` FROM pickups`
	args := []any{}

	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pickups []*domain.PickupRequest
	for rows.Next() {
		pickup, err := scanPickup(rows)
		if err != nil {
			return nil, err
		}
		pickups = append(pickups, pickup)
	}
	return pickups, rows.Err()
}

// Update updates an existing pickup request.
func (r *PickupRepository) Update(ctx context.Context, pickup *domain.PickupRequest) error {
	query := `
		UPDATE pickups
		SET status = $1, actual_cost = $2, notes = $3, driver_id = $4, payment_method = $5,
			payment_status = $6, status_history = $7, price_history = $8, updated_at = $9
		WHERE id = $10
	`

	statusHistory, err := json.Marshal(pickup.StatusHistory)
	if err != nil {
		return err
	}
	priceHistory, err := json.Marshal(pickup.PriceHistory)
	if err != nil {
		return err
	}

	result, err := r.q.ExecContext(ctx, query,
		pickup.Status,
		nullFloat(pickup.ActualCost),
		nullString(pickup.Notes),
		nullString(pickup.DriverID),
		nullString(string(pickup.PaymentMethod)),
		pickup.PaymentStatus,
		statusHistory,
		priceHistory,
		pickup.UpdatedAt,
		pickup.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// CountByStatus returns the number of pickups per status.
func (r *PickupRepository) CountByStatus(ctx context.Context) (map[domain.PickupStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM pickups GROUP BY status`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.PickupStatus]int)
	for rows.Next() {
		var status domain.PickupStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPickup(row rowScanner) (*domain.PickupRequest, error) {
	var pickup domain.PickupRequest
	var address, userContact, notes, driverID, paymentMethod sql.NullString
	var actualCost sql.NullFloat64
	var statusHistory, priceHistory []byte

	err := row.Scan(
		&pickup.ID,
		&pickup.Location.Lat,
		&pickup.Location.Lng,
		&address,
		&pickup.WasteImage,
		&pickup.WasteType,
		&pickup.Quantity,
		&pickup.EstimatedCost,
		&actualCost,
		&pickup.DistanceKm,
		&pickup.Status,
		&userContact,
		&notes,
		&driverID,
		&paymentMethod,
		&pickup.PaymentStatus,
		&statusHistory,
		&priceHistory,
		&pickup.CreatedAt,
		&pickup.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	pickup.Address = address.String
	pickup.UserContact = userContact.String
	pickup.Notes = notes.String
	pickup.DriverID = driverID.String
	pickup.PaymentMethod = domain.PaymentMethod(paymentMethod.String)
	if actualCost.Valid {
		pickup.ActualCost = actualCost.Float64
	}

	if len(statusHistory) > 0 {
		if err := json.Unmarshal(statusHistory, &pickup.StatusHistory); err != nil {
			return nil, err
		}
	}
	if len(priceHistory) > 0 {
		if err := json.Unmarshal(priceHistory, &pickup.PriceHistory); err != nil {
			return nil, err
		}
	}

	return &pickup, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(f float64) sql.NullFloat64 {
	if f == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
