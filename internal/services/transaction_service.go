package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/models"
	"github.com/hetpatel672/BudgetWise/internal/pagination"
	"github.com/hetpatel672/BudgetWise/internal/uuid"
)

// transactionService handles transaction persistence.
type transactionService struct {
	db      *gorm.DB
	reports ReportServicer
}

// NewTransactionService creates a new TransactionServicer. The report
// service is notified after every mutation so cached aggregations never go
// stale.
func NewTransactionService(db *gorm.DB, reports ReportServicer) TransactionServicer {
	return &transactionService{db: db, reports: reports}
}

// Add validates and normalizes the input into a transaction row and inserts
// it. This is the one write-through path whose persistence failures
// propagate to the caller.
func (s *transactionService) Add(input TransactionInput) (*models.Transaction, error) {
	transaction, err := normalizeTransaction(input)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateTransaction, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.reports.Invalidate()
	return transaction, nil
}

// normalizeTransaction turns caller input into a full row, generating the
// id and filling defaults when absent.
func normalizeTransaction(input TransactionInput) (*models.Transaction, error) {
	if !input.Type.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if input.Amount < 0 {
		return nil, apperrors.ErrNegativeAmount
	}

	transaction := &models.Transaction{
		ID:               input.ID,
		Amount:           input.Amount,
		Type:             input.Type,
		Category:         input.Category,
		Subcategory:      input.Subcategory,
		Description:      input.Description,
		Date:             input.Date,
		Account:          input.Account,
		Currency:         input.Currency,
		Tags:             models.StringList(input.Tags),
		Location:         input.Location,
		Receipt:          input.Receipt,
		Recurring:        input.Recurring,
		RecurringPattern: input.RecurringPattern,
	}

	if transaction.ID == "" {
		transaction.ID = uuid.New()
	}
	if transaction.Date.IsZero() {
		transaction.Date = time.Now()
	}
	if transaction.Account == "" {
		transaction.Account = "main"
	}
	if transaction.Currency == "" {
		transaction.Currency = "USD"
	}
	if transaction.Tags == nil {
		transaction.Tags = models.StringList{}
	}

	return transaction, nil
}

// List returns a filtered page of transactions ordered by date descending.
func (s *transactionService) List(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Limit, page.Offset, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	return q
}

// GetByID retrieves a transaction by id.
func (s *transactionService) GetByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// Update replaces the mutable fields of an existing transaction and
// refreshes updatedAt.
func (s *transactionService) Update(id string, input TransactionInput) (*models.Transaction, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	input.ID = existing.ID
	if input.Date.IsZero() {
		input.Date = existing.Date
	}
	updated, err := normalizeTransaction(input)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = existing.CreatedAt

	if err := s.db.Save(updated).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.reports.Invalidate()
	return updated, nil
}

// Delete removes a transaction by id.
func (s *transactionService) Delete(id string) error {
	transaction, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.reports.Invalidate()
	return nil
}
