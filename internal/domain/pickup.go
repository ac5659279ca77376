package domain

import (
	"time"

	"ecoport/internal/pricing"
)

// PickupStatus represents the current status of a pickup request.
type PickupStatus string

const (
	PickupStatusPending   PickupStatus = "Pending"
	PickupStatusApproved  PickupStatus = "Approved"
	PickupStatusAssigned  PickupStatus = "Assigned"
	PickupStatusCompleted PickupStatus = "Completed"
)

// PaymentMethod represents how a pickup will be paid for.
type PaymentMethod string

const (
	PaymentMethodCOD     PaymentMethod = "COD"
	PaymentMethodUPI     PaymentMethod = "UPI"
	PaymentMethodInvoice PaymentMethod = "Invoice"
)

// PaymentStatus represents the payment state of a pickup.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// StatusChange is one entry in a pickup's status history.
type StatusChange struct {
	Status PickupStatus `json:"status"`
	At     time.Time    `json:"at"`
	By     string       `json:"by"`
}

// PriceChange is one entry in a pickup's price history, recorded whenever an
// admin sets the actual cost.
type PriceChange struct {
	ActualCost float64   `json:"actual_cost"`
	At         time.Time `json:"at"`
	By         string    `json:"by"`
}

// PickupRequest represents a waste pickup request in the system.
// DistanceKm and EstimatedCost are computed by the pricing engine at
// creation time and are authoritative; any client-side preview is advisory.
type PickupRequest struct {
	ID            string
	Location      pricing.GeoPoint
	Address       string
	WasteImage    string // base64 encoded
	WasteType     pricing.WasteType
	Quantity      pricing.Quantity
	EstimatedCost float64
	ActualCost    float64 // 0 until an admin sets it
	DistanceKm    float64
	Status        PickupStatus
	UserContact   string
	Notes         string
	DriverID      string
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	StatusHistory []StatusChange
	PriceHistory  []PriceChange
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanTransitionTo reports whether the pickup's status may move to next.
// The lifecycle is a strict chain: Pending, Approved, Assigned, Completed.
func (p *PickupRequest) CanTransitionTo(next PickupStatus) bool {
	switch p.Status {
	case PickupStatusPending:
		return next == PickupStatusApproved
	case PickupStatusApproved:
		return next == PickupStatusAssigned
	case PickupStatusAssigned:
		return next == PickupStatusCompleted
	default:
		return false
	}
}
