package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ecoport/internal/domain"
	"ecoport/internal/pricing"
	"ecoport/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// Create persists a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, name, phone, vehicle_type, vehicle_number, status, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var lat, lng sql.NullFloat64
	if driver.Location != nil {
		lat = sql.NullFloat64{Float64: driver.Location.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: driver.Location.Lng, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		driver.Phone,
		driver.VehicleType,
		driver.VehicleNumber,
		driver.Status,
		lat,
		lng,
		driver.CreatedAt,
	)

	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `
		SELECT id, name, phone, vehicle_type, vehicle_number, status, latitude, longitude, created_at
		FROM drivers WHERE id = $1
	`

	var driver domain.Driver
	var lat, lng sql.NullFloat64

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&driver.ID,
		&driver.Name,
		&driver.Phone,
		&driver.VehicleType,
		&driver.VehicleNumber,
		&driver.Status,
		&lat,
		&lng,
		&driver.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if lat.Valid && lng.Valid {
		driver.Location = &pricing.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
	}

	return &driver, nil
}

// List retrieves drivers, optionally filtered by status.
func (r *DriverRepository) List(ctx context.Context, status domain.DriverStatus) ([]*domain.Driver, error) {
	query := `
		SELECT id, name, phone, vehicle_type, vehicle_number, status, latitude, longitude, created_at
		FROM drivers
	`
	args := []any{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		var driver domain.Driver
		var lat, lng sql.NullFloat64
		if err := rows.Scan(
			&driver.ID,
			&driver.Name,
			&driver.Phone,
			&driver.VehicleType,
			&driver.VehicleNumber,
			&driver.Status,
			&lat,
			&lng,
			&driver.CreatedAt,
		); err != nil {
			return nil, err
		}
		if lat.Valid && lng.Valid {
			driver.Location = &pricing.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
		}
		drivers = append(drivers, &driver)
	}
	return drivers, rows.Err()
}

// UpdateStatus updates a driver's status.
func (r *DriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	query := `UPDATE drivers SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
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

// UpdateLocation updates a driver's last reported location.
func (r *DriverRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	query := `UPDATE drivers SET latitude = $1, longitude = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, lat, lng, id)
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
