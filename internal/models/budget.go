package models

import (
	"time"

	"github.com/hetpatel672/BudgetWise/internal/uuid"

	"gorm.io/gorm"
)

// BudgetPeriod represents the period type for a budget
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether the period is one of the recognized budget periods.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

// Budget represents a spending ceiling for a category. Spent is a cached
// value reconciled from the transactions table; it is never authoritative
// on its own.
type Budget struct {
	ID               string       `gorm:"primaryKey" json:"id"`
	Name             string       `gorm:"not null" json:"name"`
	Category         string       `gorm:"not null;index" json:"category"`
	Amount           float64      `gorm:"not null" json:"amount"`
	Spent            float64      `gorm:"default:0" json:"spent"`
	Period           BudgetPeriod `gorm:"default:monthly" json:"period"`
	StartDate        time.Time    `gorm:"column:startDate" json:"start_date"`
	EndDate          *time.Time   `gorm:"column:endDate" json:"end_date,omitempty"`
	Currency         string       `gorm:"default:USD" json:"currency"`
	Color            string       `gorm:"default:#6366f1" json:"color"`
	Icon             string       `gorm:"default:wallet" json:"icon"`
	Notifications    bool         `gorm:"default:true" json:"notifications"`
	WarningThreshold int          `gorm:"column:warningThreshold;default:80" json:"warning_threshold"`
	IsActive         bool         `gorm:"column:isActive;default:true" json:"is_active"`
	CreatedAt        time.Time    `gorm:"column:createdAt" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"column:updatedAt" json:"updated_at"`
}

// TableName maps the model onto the legacy table.
func (Budget) TableName() string { return "budgets" }

// BeforeCreate generates a UUIDv7 for new records without an id.
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
