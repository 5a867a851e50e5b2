package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hetpatel672/BudgetWise/internal/auth"
	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
)

// CryptoHandler exposes the payload cipher so the presentation layer can
// protect sensitive blobs (exports, backups) before they leave the core.
type CryptoHandler struct {
	cipher *auth.Cipher
}

// NewCryptoHandler creates a new CryptoHandler.
func NewCryptoHandler(cipher *auth.Cipher) *CryptoHandler {
	return &CryptoHandler{cipher: cipher}
}

// EncryptRequest represents the payload for sealing a value. Value is kept
// as raw JSON so arbitrary shapes round-trip unchanged.
type EncryptRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
}

// DecryptRequest represents the payload for opening a sealed blob.
type DecryptRequest struct {
	Blob string `json:"blob" binding:"required"`
}

// Encrypt seals a JSON value and returns the envelope.
func (h *CryptoHandler) Encrypt(c *gin.Context) {
	var req EncryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "value is required"))
		return
	}

	blob, err := h.cipher.Encrypt(req.Value)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blob": blob})
}

// Decrypt opens an envelope (or a legacy plaintext blob) and returns the
// contained value.
func (h *CryptoHandler) Decrypt(c *gin.Context) {
	var req DecryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "blob is required"))
		return
	}

	var value interface{}
	if err := h.cipher.Decrypt(req.Blob, &value); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"value": value})
}
