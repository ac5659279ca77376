package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ecoport/internal/domain"
	"ecoport/internal/pricing"
	"ecoport/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// CreateDriverRequest is the HTTP request body for registering a driver.
type CreateDriverRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	VehicleType   string `json:"vehicle_type"`
	VehicleNumber string `json:"vehicle_number"`
}

// UpdateDriverStatusRequest is the HTTP request body for a status change.
type UpdateDriverStatusRequest struct {
	Status string `json:"status"`
}

// UpdateDriverLocationRequest is the HTTP request body for a location report.
type UpdateDriverLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DriverResponse is the HTTP representation of a driver.
type DriverResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	VehicleType   string   `json:"vehicle_type"`
	VehicleNumber string   `json:"vehicle_number"`
	Status        string   `json:"status"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

// CreateDriver handles POST /v1/drivers (admin)
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), service.CreateDriverRequest{
		Name:          req.Name,
		Phone:         req.Phone,
		VehicleType:   req.VehicleType,
		VehicleNumber: req.VehicleNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toDriverResponse(driver))
}

// GetDriver handles GET /v1/drivers/:id
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.driverService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// ListDrivers handles GET /v1/drivers
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.driverService.ListDrivers(c.Request.Context(), domain.DriverStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toDriverResponse(d))
	}

	respondJSON(c, http.StatusOK, response)
}

// UpdateStatus handles PUT /v1/drivers/:id/status (admin)
func (h *DriverHandler) UpdateStatus(c *gin.Context) {
	var req UpdateDriverStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	switch domain.DriverStatus(req.Status) {
	case domain.DriverStatusAvailable, domain.DriverStatusBusy, domain.DriverStatusOffline:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid driver status"})
		return
	}

	driver, err := h.driverService.UpdateStatus(c.Request.Context(), c.Param("id"), domain.DriverStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// UpdateLocation handles POST /v1/drivers/:id/location
func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	var req UpdateDriverLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.driverService.UpdateLocation(c.Request.Context(), c.Param("id"), pricing.GeoPoint{
		Lat: req.Latitude,
		Lng: req.Longitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

func toDriverResponse(d *domain.Driver) DriverResponse {
	resp := DriverResponse{
		ID:            d.ID,
		Name:          d.Name,
		Phone:         d.Phone,
		VehicleType:   d.VehicleType,
		VehicleNumber: d.VehicleNumber,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
	if d.Location != nil {
		lat, lng := d.Location.Lat, d.Location.Lng
		resp.Latitude = &lat
		resp.Longitude = &lng
	}
	return resp
}
