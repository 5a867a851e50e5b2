package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/models"
	"github.com/hetpatel672/BudgetWise/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// Create creates a new budget for a category.
func (s *budgetService) Create(input BudgetInput) (*models.Budget, error) {
	if input.Name == "" || input.Category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and category are required")
	}
	if input.Amount == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is required")
	}
	if *input.Amount < 0 {
		return nil, apperrors.ErrNegativeAmount
	}
	if input.Period == "" {
		input.Period = models.BudgetPeriodMonthly
	}
	if !input.Period.Valid() {
		return nil, apperrors.ErrInvalidPeriod
	}

	budget := &models.Budget{
		Name:      input.Name,
		Category:  input.Category,
		Amount:    *input.Amount,
		Period:    input.Period,
		StartDate: time.Now(),
		EndDate:   input.EndDate,
		Currency:  input.Currency,
		Color:     input.Color,
		Icon:      input.Icon,
		IsActive:  true,
	}
	if input.StartDate != nil {
		budget.StartDate = *input.StartDate
	}
	if budget.Currency == "" {
		budget.Currency = "USD"
	}
	if budget.Color == "" {
		budget.Color = "#6366f1"
	}
	if budget.Icon == "" {
		budget.Icon = "wallet"
	}
	budget.Notifications = true
	if input.Notifications != nil {
		budget.Notifications = *input.Notifications
	}
	budget.WarningThreshold = 80
	if input.WarningThreshold != nil {
		budget.WarningThreshold = *input.WarningThreshold
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// List returns a page of budgets with optional filters.
func (s *budgetService) List(page pagination.PageRequest, isActive *bool, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{})
	if isActive != nil {
		base = base.Where("isActive = ?", *isActive)
	}
	if period != nil {
		base = base.Where("period = ?", *period)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Paginate(page)).
		Order("createdAt DESC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Limit, page.Offset, totalItems)
	return &result, nil
}

// GetByID returns a budget by id.
func (s *budgetService) GetByID(id string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ?", id).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// Update updates an existing budget's fields and refreshes updatedAt.
func (s *budgetService) Update(id string, input BudgetInput) (*models.Budget, error) {
	budget, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Category != "" {
		updates["category"] = input.Category
	}
	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, apperrors.ErrNegativeAmount
		}
		updates["amount"] = *input.Amount
	}
	if input.Period != "" {
		if !input.Period.Valid() {
			return nil, apperrors.ErrInvalidPeriod
		}
		updates["period"] = input.Period
	}
	if input.StartDate != nil {
		updates["startDate"] = *input.StartDate
	}
	if input.EndDate != nil {
		updates["endDate"] = input.EndDate
	}
	if input.Color != "" {
		updates["color"] = input.Color
	}
	if input.Icon != "" {
		updates["icon"] = input.Icon
	}
	if input.Notifications != nil {
		updates["notifications"] = *input.Notifications
	}
	if input.WarningThreshold != nil {
		updates["warningThreshold"] = *input.WarningThreshold
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// Delete removes a budget.
func (s *budgetService) Delete(id string) error {
	budget, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Reconcile recomputes the cached Spent value from expense transactions in
// the budget's category within its period window, and stores it on the row.
// The cached value is never authoritative; this is the only writer.
func (s *budgetService) Reconcile(id string) (*models.Budget, error) {
	budget, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	periodStart, periodEnd := periodWindow(budget, time.Now())

	var spent float64
	err = s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("category = ? AND type = ? AND date BETWEEN ? AND ?",
			budget.Category, models.TransactionTypeExpense, periodStart, periodEnd).
		Scan(&spent).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(budget).Update("spent", spent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budget.Spent = spent

	return budget, nil
}

// Progress reconciles the budget and reports spending vs ceiling for the
// current period.
func (s *budgetService) Progress(id string) (*BudgetProgress, error) {
	budget, err := s.Reconcile(id)
	if err != nil {
		return nil, err
	}

	remaining := budget.Amount - budget.Spent
	var percentage float64
	if budget.Amount > 0 {
		percentage = budget.Spent / budget.Amount * 100
	}

	return &BudgetProgress{
		BudgetID:    budget.ID,
		Budgeted:    budget.Amount,
		Spent:       budget.Spent,
		Remaining:   remaining,
		Percentage:  percentage,
		OverWarning: percentage >= float64(budget.WarningThreshold),
	}, nil
}

// periodWindow determines the date range spending is reconciled over. An
// explicit end date bounds the budget's own window; otherwise the window is
// the current calendar period (weeks start on Monday).
func periodWindow(budget *models.Budget, now time.Time) (time.Time, time.Time) {
	if budget.EndDate != nil {
		return budget.StartDate, *budget.EndDate
	}

	var start time.Time
	switch budget.Period {
	case models.BudgetPeriodWeekly:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		start = day.AddDate(0, 0, -(weekday - 1))
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case models.BudgetPeriodYearly:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, time.Date(now.Year(), 12, 31, 23, 59, 59, 999999999, now.Location())
	default: // monthly
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
}
