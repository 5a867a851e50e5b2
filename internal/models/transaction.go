package models

import (
	"time"

	"github.com/hetpatel672/BudgetWise/internal/uuid"

	"gorm.io/gorm"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Valid reports whether the type is one of the recognized transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction represents a financial transaction. Column names are mapped
// explicitly to the camelCase schema of the existing mobile data files.
// Amount is always a non-negative magnitude; its sign is implied by Type.
type Transaction struct {
	ID               string            `gorm:"primaryKey" json:"id"`
	Amount           float64           `gorm:"not null" json:"amount"`
	Type             TransactionType   `gorm:"not null;index" json:"type"`
	Category         string            `gorm:"index" json:"category"`
	Subcategory      string            `json:"subcategory"`
	Description      string            `json:"description"`
	Date             time.Time         `gorm:"not null;index" json:"date"`
	Account          string            `gorm:"default:main" json:"account"`
	Currency         string            `gorm:"default:USD" json:"currency"`
	Tags             StringList        `gorm:"type:text" json:"tags"`
	Location         string            `json:"location"`
	Receipt          string            `json:"receipt"`
	Recurring        bool              `gorm:"default:false" json:"recurring"`
	RecurringPattern *RecurringPattern `gorm:"column:recurringPattern;type:text" json:"recurring_pattern,omitempty"`
	CreatedAt        time.Time         `gorm:"column:createdAt" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"column:updatedAt" json:"updated_at"`
}

// TableName maps the model onto the legacy table.
func (Transaction) TableName() string { return "transactions" }

// BeforeCreate generates a UUIDv7 for new records without an id.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	return nil
}
