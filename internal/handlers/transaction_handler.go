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

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactions services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactions services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// TransactionRequest represents the payload for creating or updating a
// transaction.
type TransactionRequest struct {
	ID               string                   `json:"id"`
	Amount           float64                  `json:"amount" binding:"min=0"`
	Type             string                   `json:"type" binding:"required,txtype"`
	Category         string                   `json:"category"`
	Subcategory      string                   `json:"subcategory"`
	Description      string                   `json:"description"`
	Date             *time.Time               `json:"date"`
	Account          string                   `json:"account"`
	Currency         string                   `json:"currency"`
	Tags             []string                 `json:"tags"`
	Location         string                   `json:"location"`
	Receipt          string                   `json:"receipt"`
	Recurring        bool                     `json:"recurring"`
	RecurringPattern *models.RecurringPattern `json:"recurring_pattern"`
}

func (r *TransactionRequest) toInput() services.TransactionInput {
	input := services.TransactionInput{
		ID:               r.ID,
		Amount:           r.Amount,
		Type:             models.TransactionType(r.Type),
		Category:         r.Category,
		Subcategory:      r.Subcategory,
		Description:      r.Description,
		Account:          r.Account,
		Currency:         r.Currency,
		Tags:             r.Tags,
		Location:         r.Location,
		Receipt:          r.Receipt,
		Recurring:        r.Recurring,
		RecurringPattern: r.RecurringPattern,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}

// Create inserts a new transaction.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactions.Add(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// List returns a filtered, paginated list of transactions ordered by date
// descending.
func (h *TransactionHandler) List(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid pagination parameters"))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactions.List(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if raw := c.Query("type"); raw != "" {
		txType := models.TransactionType(raw)
		if !txType.Valid() {
			return filter, apperrors.ErrInvalidTransactionType
		}
		filter.Type = &txType
	}
	if raw := c.Query("category"); raw != "" {
		filter.Category = &raw
	}

	start, err := parseTimeQuery(c, "start")
	if err != nil {
		return filter, err
	}
	filter.StartDate = start

	end, err := parseTimeQuery(c, "end")
	if err != nil {
		return filter, err
	}
	filter.EndDate = end

	return filter, nil
}

// Get returns one transaction by id.
func (h *TransactionHandler) Get(c *gin.Context) {
	transaction, err := h.transactions.GetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// Update replaces a transaction's fields.
func (h *TransactionHandler) Update(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactions.Update(c.Param("id"), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// Delete removes a transaction.
func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.transactions.Delete(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
