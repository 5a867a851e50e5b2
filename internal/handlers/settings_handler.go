package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/services"
)

// SettingsHandler handles the settings key-value store.
type SettingsHandler struct {
	settings services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// SetSettingRequest represents the payload for upserting a setting.
type SetSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// List returns every setting row.
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.settings.All()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// Get returns one setting by key.
func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.settings.Get(c.Param("key"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

// Set upserts one setting by key.
func (h *SettingsHandler) Set(c *gin.Context) {
	var req SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "value is required"))
		return
	}

	if err := h.settings.Set(c.Param("key"), req.Value); err != nil {
		respondWithError(c, err)
		return
	}

	setting, err := h.settings.Get(c.Param("key"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"setting": setting})
}
