package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoport/internal/auth"
	"ecoport/internal/config"
	"ecoport/internal/middleware"
)

// AuthHandler handles admin authentication.
type AuthHandler struct {
	tokens *auth.TokenManager
	cfg    config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(tokens *auth.TokenManager, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{tokens: tokens, cfg: cfg}
}

// LoginRequest is the HTTP request body for admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the HTTP response for a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Username != h.cfg.AdminUsername || req.Password != h.cfg.AdminPassword {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	token, err := h.tokens.CreateToken(req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, LoginResponse{AccessToken: token, TokenType: "bearer"})
}

// Me handles GET /v1/auth/me (admin)
func (h *AuthHandler) Me(c *gin.Context) {
	respondJSON(c, http.StatusOK, gin.H{
		"username": adminUsername(c),
		"role":     "admin",
	})
}

// adminUsername returns the authenticated admin's username, set by the auth
// middleware. Empty for unauthenticated routes.
func adminUsername(c *gin.Context) string {
	return c.GetString(middleware.AdminUsernameKey)
}
