// Package pricing implements the cost-estimation and service-area
// eligibility engine. It is a pure leaf package: the quote preview endpoint
// and the authoritative pickup-creation path both call the same Engine so
// the client can never be quoted a price the server disagrees with.
package pricing

import "math"

// WasteType is the category of waste to be collected.
type WasteType string

const (
	WasteOrganic WasteType = "Organic"
	WastePlastic WasteType = "Plastic"
	WasteMetal   WasteType = "Metal"
	WasteEWaste  WasteType = "E-Waste"
	WasteMixed   WasteType = "Mixed"
)

// Quantity is the volume tier of a pickup.
type Quantity string

const (
	QuantitySmall  Quantity = "Small"
	QuantityMedium Quantity = "Medium"
	QuantityLarge  Quantity = "Large"
	QuantityBulk   Quantity = "Bulk"
)

// Config contains all pricing parameters. A new city or rate change is a
// config change, not a code change.
type Config struct {
	Depot         GeoPoint
	RadiusKm      float64
	RatePerKm     float64
	BaseRate      float64
	VolumeFactors map[Quantity]float64
	Surcharges    map[WasteType]float64
}

// DefaultConfig returns the pilot-city deployment parameters.
func DefaultConfig() Config {
	return Config{
		Depot:     GeoPoint{Lat: 26.7271, Lng: 88.3953},
		RadiusKm:  20,
		RatePerKm: 10,
		BaseRate:  50,
		VolumeFactors: map[Quantity]float64{
			QuantitySmall:  1.0,
			QuantityMedium: 1.5,
			QuantityLarge:  2.0,
			QuantityBulk:   3.0,
		},
		Surcharges: map[WasteType]float64{
			WasteOrganic: 1.0,
			WastePlastic: 1.0,
			WasteMetal:   1.0,
			WasteEWaste:  1.2,
			WasteMixed:   1.1,
		},
	}
}

// Quote is the result of an eligibility and cost computation.
// EstimatedCost is nil when the point is outside the service area.
type Quote struct {
	DistanceKm    float64
	InServiceArea bool
	EstimatedCost *float64
}

// UnknownValueHook is called when a waste type or quantity has no multiplier
// entry and the engine falls back to 1.0. Kind is "waste_type" or "quantity".
type UnknownValueHook func(kind, value string)

// Engine computes quotes from a fixed configuration.
type Engine struct {
	cfg       Config
	onUnknown UnknownValueHook
}

// Option configures an Engine.
type Option func(*Engine)

// WithUnknownValueHook makes the 1.0 fallback for unrecognized waste types
// and quantities observable. The fallback itself is deliberate: a client
// older than the server's category list should still get a usable preview.
func WithUnknownValueHook(hook UnknownValueHook) Option {
	return func(e *Engine) {
		e.onUnknown = hook
	}
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Quote computes distance from the depot, service-area eligibility, and the
// estimated cost for a pickup at the given point.
//
// The boundary is inclusive: a point exactly RadiusKm from the depot is
// eligible. Cost is computed from the unrounded distance to avoid
// compounding rounding error; only the returned values are rounded to two
// decimal places.
func (e *Engine) Quote(point GeoPoint, wasteType WasteType, quantity Quantity) (Quote, error) {
	if err := point.Validate(); err != nil {
		return Quote{}, err
	}

	distance := Distance(e.cfg.Depot, point)

	q := Quote{
		DistanceKm:    round2(distance),
		InServiceArea: distance <= e.cfg.RadiusKm,
	}
	if !q.InServiceArea {
		return q, nil
	}

	cost := e.cost(distance, wasteType, quantity)
	q.EstimatedCost = &cost
	return q, nil
}

func (e *Engine) cost(distanceKm float64, wasteType WasteType, quantity Quantity) float64 {
	volumeFactor, ok := e.cfg.VolumeFactors[quantity]
	if !ok {
		volumeFactor = 1.0
		if e.onUnknown != nil {
			e.onUnknown("quantity", string(quantity))
		}
	}

	surcharge, ok := e.cfg.Surcharges[wasteType]
	if !ok {
		surcharge = 1.0
		if e.onUnknown != nil {
			e.onUnknown("waste_type", string(wasteType))
		}
	}

	total := ((distanceKm * e.cfg.RatePerKm) + (volumeFactor * e.cfg.BaseRate)) * surcharge
	return round2(total)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
