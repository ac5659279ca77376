package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoport/internal/pricing"
)

// QuoteHandler serves the advisory cost preview. It calls the same pricing
// engine as the pickup-creation path, so the preview a user sees is the
// price the server will persist.
type QuoteHandler struct {
	engine *pricing.Engine
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(engine *pricing.Engine) *QuoteHandler {
	return &QuoteHandler{engine: engine}
}

// QuoteRequest is the HTTP request body for a cost preview.
type QuoteRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	WasteType string  `json:"waste_type" binding:"required"`
	Quantity  string  `json:"quantity" binding:"required"`
}

// QuoteResponse is the HTTP response for a cost preview. EstimatedCost is
// omitted when the point is outside the service area.
type QuoteResponse struct {
	InServiceArea bool     `json:"in_service_area"`
	DistanceKm    float64  `json:"distance_km"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// GetQuote handles POST /v1/quotes
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	quote, err := h.engine.Quote(
		pricing.GeoPoint{Lat: req.Latitude, Lng: req.Longitude},
		pricing.WasteType(req.WasteType),
		pricing.Quantity(req.Quantity),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := QuoteResponse{
		InServiceArea: quote.InServiceArea,
		DistanceKm:    quote.DistanceKm,
		EstimatedCost: quote.EstimatedCost,
	}
	if !quote.InServiceArea {
		resp.Message = "Currently we serve Siliguri city limits only."
	}

	respondJSON(c, http.StatusOK, resp)
}
