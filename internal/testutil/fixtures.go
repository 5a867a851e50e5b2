package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/hetpatel672/BudgetWise/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTransaction creates a transaction of the given type, category,
// amount, and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, txType models.TransactionType, category string, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Amount:   amount,
		Type:     txType,
		Category: category,
		Date:     date,
		Account:  "main",
		Currency: "USD",
		Tags:     models.StringList{},
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:     fmt.Sprintf("Test Category %d", nextID()),
		Type:     categoryType,
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestBudget creates a monthly budget for the given category name.
func CreateTestBudget(t *testing.T, db *gorm.DB, category string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Name:             fmt.Sprintf("Test Budget %d", nextID()),
		Category:         category,
		Amount:           100,
		Period:           models.BudgetPeriodMonthly,
		StartDate:        time.Now().Truncate(24 * time.Hour),
		Currency:         "USD",
		WarningThreshold: 80,
		IsActive:         true,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestSetting creates a setting row.
func CreateTestSetting(t *testing.T, db *gorm.DB, key, value string) *models.Setting {
	t.Helper()

	setting := &models.Setting{Key: key, Value: value}
	if err := db.Create(setting).Error; err != nil {
		t.Fatalf("failed to create test setting: %v", err)
	}
	return setting
}
