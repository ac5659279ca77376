package domain

import (
	"time"

	"ecoport/internal/pricing"
)

// DriverStatus represents the current status of a driver.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "Available"
	DriverStatusBusy      DriverStatus = "Busy"
	DriverStatusOffline   DriverStatus = "Offline"
)

// Driver represents a pickup driver in the system.
type Driver struct {
	ID            string
	Name          string
	Phone         string
	VehicleType   string
	VehicleNumber string
	Status        DriverStatus
	Location      *pricing.GeoPoint // nil until the driver first reports in
	CreatedAt     time.Time
}
