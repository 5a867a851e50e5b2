package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hetpatel672/BudgetWise/internal/auth"
	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/middleware"
)

// AuthHandler exposes the PIN gate to the presentation layer.
type AuthHandler struct {
	auth       *auth.Service
	secret     string
	sessionTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc *auth.Service, secret string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: authSvc, secret: secret, sessionTTL: sessionTTL}
}

// SetupPINRequest is the payload for configuring a PIN.
type SetupPINRequest struct {
	PIN string `json:"pin" binding:"required,min=4,numeric"`
}

// LoginRequest is the payload for authenticating with a PIN.
type LoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// Status reports the configured method and whether a session is live.
func (h *AuthHandler) Status(c *gin.Context) {
	result, err := h.auth.Authenticate()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"method":        h.auth.Method(),
		"authenticated": h.auth.Authenticated(),
		"requires_pin":  result.RequiresPIN,
	})
}

// SetupPIN configures the PIN gate.
func (h *AuthHandler) SetupPIN(c *gin.Context) {
	var req SetupPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "PIN must be at least 4 digits"))
		return
	}

	if err := h.auth.SetupPIN(req.PIN); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"method": auth.MethodPIN})
}

// Login authenticates with a PIN and mints a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "PIN is required"))
		return
	}

	if err := h.auth.AuthenticateWithPIN(req.PIN); err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateSessionToken(h.secret, h.sessionTTL, h.auth.Method())
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(h.sessionTTL.Seconds()),
	})
}

// Logout ends the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout()
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Reset clears the PIN hash and encryption key and disables the gate.
func (h *AuthHandler) Reset(c *gin.Context) {
	if err := h.auth.ResetSecurity(); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"method": auth.MethodNone})
}
