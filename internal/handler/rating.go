package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ecoport/internal/domain"
	"ecoport/internal/service"
)

// RatingHandler handles HTTP requests for ratings.
type RatingHandler struct {
	ratingService *service.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// CreateRatingRequest is the HTTP request body for rating a pickup.
type CreateRatingRequest struct {
	PickupID string `json:"pickup_id"`
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback,omitempty"`
}

// RatingResponse is the HTTP representation of a rating.
type RatingResponse struct {
	ID        string `json:"id"`
	PickupID  string `json:"pickup_id"`
	Rating    int    `json:"rating"`
	Feedback  string `json:"feedback,omitempty"`
	CreatedAt string `json:"created_at"`
}

// CreateRating handles POST /v1/ratings
func (h *RatingHandler) CreateRating(c *gin.Context) {
	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rating, err := h.ratingService.CreateRating(c.Request.Context(), service.CreateRatingRequest{
		PickupID: req.PickupID,
		Stars:    req.Rating,
		Feedback: req.Feedback,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRatingResponse(rating))
}

// GetRating handles GET /v1/ratings/:pickup_id
func (h *RatingHandler) GetRating(c *gin.Context) {
	rating, err := h.ratingService.GetRating(c.Request.Context(), c.Param("pickup_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRatingResponse(rating))
}

func toRatingResponse(r *domain.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		PickupID:  r.PickupID,
		Rating:    r.Stars,
		Feedback:  r.Feedback,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
