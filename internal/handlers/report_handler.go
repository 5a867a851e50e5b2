package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/models"
	"github.com/hetpatel672/BudgetWise/internal/services"
)

// ReportHandler serves the aggregation queries behind the report screens.
type ReportHandler struct {
	reports services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports services.ReportServicer) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Summary returns totals grouped by transaction type for a date range.
func (h *ReportHandler) Summary(c *gin.Context) {
	start, end, err := requireTimeRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reports.TransactionSummary(start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// Breakdown returns per-category totals for one transaction type.
func (h *ReportHandler) Breakdown(c *gin.Context) {
	txType := models.TransactionType(c.Query("type"))
	if !txType.Valid() {
		respondWithError(c, apperrors.ErrInvalidTransactionType)
		return
	}

	start, end, err := requireTimeRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.reports.CategoryBreakdown(txType, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}

// Trends returns monthly totals by type for the trailing N months.
func (h *ReportHandler) Trends(c *gin.Context) {
	months := 6
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid months"))
			return
		}
		months = parsed
	}

	trends, err := h.reports.MonthlyTrends(months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": trends})
}
