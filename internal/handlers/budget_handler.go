package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/models"
	"github.com/hetpatel672/BudgetWise/internal/pagination"
	"github.com/hetpatel672/BudgetWise/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgets services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgets services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

// BudgetRequest represents the payload for creating or updating a budget.
type BudgetRequest struct {
	Name             string     `json:"name"`
	Category         string     `json:"category"`
	Amount           *float64   `json:"amount" binding:"omitempty,min=0"`
	Period           string     `json:"period" binding:"omitempty,budgetperiod"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	Currency         string     `json:"currency"`
	Color            string     `json:"color"`
	Icon             string     `json:"icon"`
	Notifications    *bool      `json:"notifications"`
	WarningThreshold *int       `json:"warning_threshold"`
}

func (r *BudgetRequest) toInput() services.BudgetInput {
	return services.BudgetInput{
		Name:             r.Name,
		Category:         r.Category,
		Amount:           r.Amount,
		Period:           models.BudgetPeriod(r.Period),
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Currency:         r.Currency,
		Color:            r.Color,
		Icon:             r.Icon,
		Notifications:    r.Notifications,
		WarningThreshold: r.WarningThreshold,
	}
}

// Create creates a new budget.
func (h *BudgetHandler) Create(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgets.Create(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// List returns a page of budgets with optional isActive/period filters.
func (h *BudgetHandler) List(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid pagination parameters"))
		return
	}

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		isActive = &active
	}

	var period *models.BudgetPeriod
	if raw := c.Query("period"); raw != "" {
		p := models.BudgetPeriod(raw)
		if !p.Valid() {
			respondWithError(c, apperrors.ErrInvalidPeriod)
			return
		}
		period = &p
	}

	result, err := h.budgets.List(page, isActive, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one budget, with its Spent value freshly reconciled.
func (h *BudgetHandler) Get(c *gin.Context) {
	budget, err := h.budgets.Reconcile(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// Update updates a budget's fields.
func (h *BudgetHandler) Update(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgets.Update(c.Param("id"), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// Delete removes a budget.
func (h *BudgetHandler) Delete(c *gin.Context) {
	if err := h.budgets.Delete(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Progress reports spending vs ceiling for the budget's current period.
func (h *BudgetHandler) Progress(c *gin.Context) {
	progress, err := h.budgets.Progress(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
