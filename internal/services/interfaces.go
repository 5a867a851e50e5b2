package services

import (
	"time"

	"github.com/hetpatel672/BudgetWise/internal/models"
	"github.com/hetpatel672/BudgetWise/internal/pagination"
)

// TransactionInput carries the caller-supplied fields for a new or updated
// transaction. Zero values for ID, Date, Account, and Currency are filled
// with generated defaults on insert.
type TransactionInput struct {
	ID               string
	Amount           float64
	Type             models.TransactionType
	Category         string
	Subcategory      string
	Description      string
	Date             time.Time
	Account          string
	Currency         string
	Tags             []string
	Location         string
	Receipt          string
	Recurring        bool
	RecurringPattern *models.RecurringPattern
}

// TransactionFilter holds optional filter parameters for listing
// transactions. Each present field ANDs a predicate.
type TransactionFilter struct {
	Type      *models.TransactionType
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionServicer defines the contract for transaction persistence.
// Unlike the read paths, Add propagates persistence failures to the caller.
type TransactionServicer interface {
	Add(input TransactionInput) (*models.Transaction, error)
	List(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetByID(id string) (*models.Transaction, error)
	Update(id string, input TransactionInput) (*models.Transaction, error)
	Delete(id string) error
}

// Summary is the fixed-shape aggregation of totals by transaction type.
// Types with no transactions in the range are zero, never absent.
type Summary struct {
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
	Transfer float64 `json:"transfer"`
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// MonthlyTotal is one row of a monthly trend.
type MonthlyTotal struct {
	Month string                 `json:"month"` // YYYY-MM
	Type  models.TransactionType `json:"type"`
	Total float64                `json:"total"`
}

// ReportServicer defines the read-side aggregation contract.
//
// Ordering is deterministic: CategoryBreakdown orders by total descending
// with category name ascending as the tie-break; MonthlyTrends orders by
// month descending with type ascending as the tie-break.
type ReportServicer interface {
	TransactionSummary(start, end time.Time) (*Summary, error)
	CategoryBreakdown(txType models.TransactionType, start, end time.Time) ([]CategoryTotal, error)
	MonthlyTrends(months int) ([]MonthlyTotal, error)

	// Invalidate drops any cached aggregation results. Called by the
	// write paths after a transaction mutation.
	Invalidate()
}

// BudgetInput carries caller-supplied fields for a new or updated budget.
// Pointer fields distinguish "absent" from a zero value on update.
type BudgetInput struct {
	Name             string
	Category         string
	Amount           *float64
	Period           models.BudgetPeriod
	StartDate        *time.Time
	EndDate          *time.Time
	Currency         string
	Color            string
	Icon             string
	Notifications    *bool
	WarningThreshold *int
}

// BudgetProgress contains spending vs budget data for a budget's period.
type BudgetProgress struct {
	BudgetID    string  `json:"budget_id"`
	Budgeted    float64 `json:"budgeted"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	Percentage  float64 `json:"percentage"`
	OverWarning bool    `json:"over_warning"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	Create(input BudgetInput) (*models.Budget, error)
	List(page pagination.PageRequest, isActive *bool, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	GetByID(id string) (*models.Budget, error)
	Update(id string, input BudgetInput) (*models.Budget, error)
	Delete(id string) error

	// Reconcile recomputes the cached Spent value from the transactions
	// in the budget's category and period window.
	Reconcile(id string) (*models.Budget, error)
	Progress(id string) (*BudgetProgress, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	Create(name string, categoryType models.CategoryType, color, icon string, parentID *string) (*models.Category, error)
	List(page pagination.PageRequest, categoryType *models.CategoryType) (*pagination.PageResponse[models.Category], error)
	GetByID(id string) (*models.Category, error)
	Update(id string, name, color, icon string, parentID *string, isActive *bool) (*models.Category, error)
	Delete(id string) error
}

// SettingsServicer defines the contract for the settings key-value store.
// Set is an upsert: it replaces on conflict and refreshes updatedAt.
type SettingsServicer interface {
	Get(key string) (*models.Setting, error)
	Set(key, value string) error
	All() ([]models.Setting, error)
}
