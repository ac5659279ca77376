package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ecoport/internal/domain"
	"ecoport/internal/pricing"
	"ecoport/internal/repository"
	"ecoport/internal/service"
)

// PickupHandler handles HTTP requests for pickup requests.
type PickupHandler struct {
	pickupService     *service.PickupService
	assignmentService *service.AssignmentService
}

// NewPickupHandler creates a new PickupHandler.
func NewPickupHandler(pickupService *service.PickupService, assignmentService *service.AssignmentService) *PickupHandler {
	return &PickupHandler{
		pickupService:     pickupService,
		assignmentService: assignmentService,
	}
}

// CreatePickupRequest is the HTTP request body for creating a pickup.
type CreatePickupRequest struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Address       string  `json:"address,omitempty"`
	WasteImage    string  `json:"waste_image"`
	WasteType     string  `json:"waste_type"`
	Quantity      string  `json:"quantity"`
	UserContact   string  `json:"user_contact,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"` // COD, UPI, Invoice
}

// UpdatePickupRequest is the HTTP request body for updating a pickup.
type UpdatePickupRequest struct {
	Status        *string  `json:"status,omitempty"`
	ActualCost    *float64 `json:"actual_cost,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	PaymentStatus *string  `json:"payment_status,omitempty"`
}

// AssignDriverRequest is the HTTP request body for assigning a driver.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

// StatusChangeResponse is one status history entry.
type StatusChangeResponse struct {
	Status string `json:"status"`
	At     string `json:"at"`
	By     string `json:"by"`
}

// PriceChangeResponse is one price history entry.
type PriceChangeResponse struct {
	ActualCost float64 `json:"actual_cost"`
	At         string  `json:"at"`
	By         string  `json:"by"`
}

// PickupResponse is the HTTP representation of a pickup request.
type PickupResponse struct {
	ID            string                 `json:"id"`
	Latitude      float64                `json:"latitude"`
	Longitude     float64                `json:"longitude"`
	Address       string                 `json:"address,omitempty"`
	WasteType     string                 `json:"waste_type"`
	Quantity      string                 `json:"quantity"`
	EstimatedCost float64                `json:"estimated_cost"`
	ActualCost    *float64               `json:"actual_cost,omitempty"`
	DistanceKm    float64                `json:"distance_km"`
	Status        string                 `json:"status"`
	UserContact   string                 `json:"user_contact,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	DriverID      string                 `json:"driver_id,omitempty"`
	PaymentMethod string                 `json:"payment_method,omitempty"`
	PaymentStatus string                 `json:"payment_status"`
	StatusHistory []StatusChangeResponse `json:"status_history"`
	PriceHistory  []PriceChangeResponse  `json:"price_history,omitempty"`
	CreatedAt     string                 `json:"created_at"`
	UpdatedAt     string                 `json:"updated_at"`
}

// NearbyDriverResponse is one driver suggestion for an assignment.
type NearbyDriverResponse struct {
	DriverID      string  `json:"driver_id"`
	Name          string  `json:"name"`
	VehicleType   string  `json:"vehicle_type"`
	VehicleNumber string  `json:"vehicle_number"`
	DistanceKm    float64 `json:"distance_km"`
}

// CreatePickup handles POST /v1/pickups
func (h *PickupHandler) CreatePickup(c *gin.Context) {
	var req CreatePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	paymentMethod, err := service.ValidatePaymentMethod(req.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	pickup, err := h.pickupService.CreatePickup(c.Request.Context(), service.CreatePickupRequest{
		Location:      pricing.GeoPoint{Lat: req.Latitude, Lng: req.Longitude},
		Address:       req.Address,
		WasteImage:    req.WasteImage,
		WasteType:     pricing.WasteType(req.WasteType),
		Quantity:      pricing.Quantity(req.Quantity),
		UserContact:   req.UserContact,
		Notes:         req.Notes,
		PaymentMethod: paymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPickupResponse(pickup))
}

// GetPickup handles GET /v1/pickups/:id
func (h *PickupHandler) GetPickup(c *gin.Context) {
	pickup, err := h.pickupService.GetPickup(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPickupResponse(pickup))
}

// ListPickups handles GET /v1/pickups
func (h *PickupHandler) ListPickups(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	pickups, err := h.pickupService.ListPickups(c.Request.Context(), repository.PickupFilter{
		Status: domain.PickupStatus(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PickupResponse, 0, len(pickups))
	for _, p := range pickups {
		response = append(response, toPickupResponse(p))
	}

	respondJSON(c, http.StatusOK, response)
}

// UpdatePickup handles PUT /v1/pickups/:id (admin)
func (h *PickupHandler) UpdatePickup(c *gin.Context) {
	var req UpdatePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	update := service.UpdatePickupRequest{
		PickupID:   c.Param("id"),
		UpdatedBy:  adminUsername(c),
		ActualCost: req.ActualCost,
		Notes:      req.Notes,
	}
	if req.Status != nil {
		status := domain.PickupStatus(*req.Status)
		update.Status = &status
	}
	if req.PaymentStatus != nil {
		paymentStatus := domain.PaymentStatus(*req.PaymentStatus)
		update.PaymentStatus = &paymentStatus
	}

	pickup, err := h.pickupService.UpdatePickup(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPickupResponse(pickup))
}

// AssignDriver handles POST /v1/pickups/:id/assign (admin)
func (h *PickupHandler) AssignDriver(c *gin.Context) {
	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	pickup, err := h.assignmentService.AssignDriver(c.Request.Context(), c.Param("id"), req.DriverID, adminUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPickupResponse(pickup))
}

// NearbyDrivers handles GET /v1/pickups/:id/nearby-drivers (admin)
func (h *PickupHandler) NearbyDrivers(c *gin.Context) {
	radiusKm, _ := strconv.ParseFloat(c.DefaultQuery("radius_km", "0"), 64)

	candidates, err := h.assignmentService.NearbyDrivers(c.Request.Context(), c.Param("id"), radiusKm)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]NearbyDriverResponse, 0, len(candidates))
	for _, cand := range candidates {
		response = append(response, NearbyDriverResponse{
			DriverID:      cand.Driver.ID,
			Name:          cand.Driver.Name,
			VehicleType:   cand.Driver.VehicleType,
			VehicleNumber: cand.Driver.VehicleNumber,
			DistanceKm:    cand.DistanceKm,
		})
	}

	respondJSON(c, http.StatusOK, response)
}

func toPickupResponse(p *domain.PickupRequest) PickupResponse {
	resp := PickupResponse{
		ID:            p.ID,
		Latitude:      p.Location.Lat,
		Longitude:     p.Location.Lng,
		Address:       p.Address,
		WasteType:     string(p.WasteType),
		Quantity:      string(p.Quantity),
		EstimatedCost: p.EstimatedCost,
		DistanceKm:    p.DistanceKm,
		Status:        string(p.Status),
		UserContact:   p.UserContact,
		Notes:         p.Notes,
		DriverID:      p.DriverID,
		PaymentMethod: string(p.PaymentMethod),
		PaymentStatus: string(p.PaymentStatus),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}

	if p.ActualCost != 0 {
		cost := p.ActualCost
		resp.ActualCost = &cost
	}

	for _, s := range p.StatusHistory {
		resp.StatusHistory = append(resp.StatusHistory, StatusChangeResponse{
			Status: string(s.Status),
			At:     s.At.Format(time.RFC3339),
			By:     s.By,
		})
	}
	for _, pc := range p.PriceHistory {
		resp.PriceHistory = append(resp.PriceHistory, PriceChangeResponse{
			ActualCost: pc.ActualCost,
			At:         pc.At.Format(time.RFC3339),
			By:         pc.By,
		})
	}

	return resp
}
